/*
Package annotate turns object detector output into normalized detection
records and draws them onto video frames.

Class metadata (names, colors and optional keypoint skeletons) is loaded from
YAML into a classes.Registry.  Detector output, either positional rows or
structured records, is converted by a postprocess.Extractor into
result.Detection values which serialize to a stable JSON layout.  The
render.Annotator draws boxes, labels, keypoints and skeleton connections onto
a copy of a gocv frame.

Pipeline ties these together the way a detector service uses them, holding
the active registry, the confidence and IoU thresholds and whether detector
rows carry track ids.

See example code and usage in the example subdirectory.
*/
package annotate
