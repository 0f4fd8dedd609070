// Command annotate-video draws per frame detector results onto a video.  The
// detections file holds one detector JSON result per line, one line per frame
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/akamensky/argparse"
	"github.com/sirupsen/logrus"
	annotate "github.com/yolokit/go-annotate"
	"github.com/yolokit/go-annotate/logging"
	"github.com/yolokit/go-annotate/render"
	"github.com/yolokit/go-annotate/result"
	"github.com/yolokit/go-annotate/tracker"
	"gocv.io/x/gocv"
)

// maxLine is the longest detections line accepted
const maxLine = 16 * 1024 * 1024

// Options for a video run
type Options struct {
	Video      string
	Detections string
	Config     string
	Output     string
	Codec      string
	// Track assigns track ids with the built in tracker
	Track bool
	// TrailSize is the number of past centers drawn behind each track, zero
	// disables trails
	TrailSize int
}

// Annotator processes a video frame by frame
type Annotator struct {
	opts     Options
	log      logrus.FieldLogger
	pipeline *annotate.Pipeline
	tracker  *tracker.Tracker
	trail    *tracker.Trail
}

func main() {
	parser := argparse.NewParser("annotate-video", "Draw per frame detector results onto a video")
	video := parser.String("i", "input", &argparse.Options{Help: "Input video file", Required: true})
	dets := parser.String("d", "detections", &argparse.Options{Help: "Detections file, one JSON result per frame per line", Required: true})
	cfg := parser.String("c", "config", &argparse.Options{Help: "Inference config file", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Output video file", Default: "./output.mp4"})
	codec := parser.String("", "codec", &argparse.Options{Help: "Output video fourcc codec", Default: "mp4v"})
	track := parser.Flag("t", "track", &argparse.Options{Help: "Assign track ids with the built in tracker"})
	trail := parser.Int("", "trail", &argparse.Options{Help: "Length of track trails to draw, 0 disables", Default: 0})
	logLevel := parser.String("", "log-level", &argparse.Options{Help: "Log level", Default: "info"})
	logFile := parser.String("", "log-file", &argparse.Options{Help: "Also write logs to this file"})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	log, err := logging.New(logging.Options{Level: *logLevel, File: *logFile})

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a, err := NewAnnotator(Options{
		Video:      *video,
		Detections: *dets,
		Config:     *cfg,
		Output:     *output,
		Codec:      *codec,
		Track:      *track,
		TrailSize:  *trail,
	}, log)

	if err != nil {
		log.WithError(err).Fatal("Error starting")
	}

	// finish the current frame and close the output cleanly on ctrl-c
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.WithError(err).Fatal("Annotating video failed")
	}
}

// NewAnnotator loads the config and class metadata for a run
func NewAnnotator(opts Options, log logrus.FieldLogger) (*Annotator, error) {

	cfg, err := annotate.LoadConfig(opts.Config)

	if err != nil {
		return nil, err
	}

	pipeline, err := annotate.NewFromConfig(cfg, annotate.WithLogger(log))

	if err != nil {
		return nil, fmt.Errorf("error creating pipeline: %w", err)
	}

	a := &Annotator{
		opts:     opts,
		log:      log,
		pipeline: pipeline,
	}

	if opts.Track {
		a.tracker = tracker.New(tracker.DefaultConfig(), log)
	}

	if opts.TrailSize > 0 {
		a.trail = tracker.NewTrail(opts.TrailSize)
	}

	return a, nil
}

// Run annotates every frame until the video or detections run out or ctx
// is cancelled
func (a *Annotator) Run(ctx context.Context) error {

	video, err := gocv.VideoCaptureFile(a.opts.Video)

	if err != nil {
		return fmt.Errorf("error opening video: %w", err)
	}

	defer video.Close()

	width := int(video.Get(gocv.VideoCaptureFrameWidth))
	height := int(video.Get(gocv.VideoCaptureFrameHeight))
	fps := video.Get(gocv.VideoCaptureFPS)

	writer, err := gocv.VideoWriterFile(a.opts.Output, a.opts.Codec, fps, width, height, true)

	if err != nil {
		return fmt.Errorf("error opening output video: %w", err)
	}

	defer writer.Close()

	detFile, err := os.Open(a.opts.Detections)

	if err != nil {
		return fmt.Errorf("error opening detections: %w", err)
	}

	defer detFile.Close()

	lines := bufio.NewScanner(detFile)
	lines.Buffer(make([]byte, 0, 64*1024), maxLine)

	frame := gocv.NewMat()
	defer frame.Close()

	a.log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"fps":    fps,
	}).Info("Detecting video")

	start := time.Now()
	count := 0

	for ctx.Err() == nil {

		if ok := video.Read(&frame); !ok {
			break
		}

		if frame.Empty() {
			continue
		}

		if !lines.Scan() {
			a.log.WithField("frame", count).Warn("Detections ended before the video")
			break
		}

		if err := a.frame(writer, frame, lines.Bytes(), count); err != nil {
			return fmt.Errorf("frame %d: %w", count, err)
		}

		count++
	}

	if err := lines.Err(); err != nil {
		return fmt.Errorf("error reading detections: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"frames":      count,
		"interrupted": ctx.Err() != nil,
		"elapsed":     time.Since(start).Round(time.Millisecond),
	}).Info("Done")

	return nil
}

// frame annotates and writes a single frame
func (a *Annotator) frame(writer *gocv.VideoWriter, frame gocv.Mat, line []byte, n int) error {

	var (
		dets []result.Detection
		err  error
	)

	if len(line) > 0 {
		dets, err = a.pipeline.DetectJSON(line)

		if err != nil {
			return err
		}
	}

	if a.tracker != nil {
		dets = a.tracker.Update(dets)
	}

	out, skipped, err := a.pipeline.Draw(frame, dets)
	defer out.Close()

	if err != nil {
		return err
	}

	if a.trail != nil {
		a.trail.Add(dets)
		a.trail.Forget(a.activeIDs(dets))
		render.Trail(&out, dets, a.trail, render.DefaultTrailStyle())
	}

	if len(skipped) > 0 {
		a.log.WithFields(logrus.Fields{
			"frame":   n,
			"skipped": len(skipped),
		}).Debug("Frame drawn with skipped detections")
	}

	return writer.Write(out)
}

// activeIDs returns the track ids still alive, taken from the tracker when
// it assigns ids and from the frame's detections otherwise
func (a *Annotator) activeIDs(dets []result.Detection) map[int]bool {

	if a.tracker != nil {
		return a.tracker.ActiveIDs()
	}

	ids := make(map[int]bool, len(dets))

	for _, det := range dets {
		if det.TrackID != nil {
			ids[*det.TrackID] = true
		}
	}

	return ids
}
