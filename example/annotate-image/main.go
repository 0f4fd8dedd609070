// Command annotate-image draws detector results onto an image and prints the
// normalized detections as JSON
package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/sirupsen/logrus"
	annotate "github.com/yolokit/go-annotate"
	"github.com/yolokit/go-annotate/logging"
	"github.com/yolokit/go-annotate/result"
	"gocv.io/x/gocv"
)

func main() {
	parser := argparse.NewParser("annotate-image", "Draw detector results onto an image")
	imgFile := parser.String("i", "image", &argparse.Options{Help: "Image file to annotate", Required: true})
	detFile := parser.String("d", "detections", &argparse.Options{Help: "Detector JSON result for the image", Required: true})
	cfgFile := parser.String("c", "config", &argparse.Options{Help: "Inference config file", Required: true})
	outFile := parser.String("o", "output", &argparse.Options{Help: "Annotated image output file", Default: "./annotated.jpg"})
	indent := parser.Int("", "indent", &argparse.Options{Help: "Indent printed JSON by this many spaces", Default: 2})
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

	if err := run(log, *imgFile, *detFile, *cfgFile, *outFile, *indent); err != nil {
		log.WithError(err).Fatal("Annotating image failed")
	}
}

func run(log *logrus.Logger, imgFile, detFile, cfgFile, outFile string, indent int) error {

	cfg, err := annotate.LoadConfig(cfgFile)

	if err != nil {
		return err
	}

	pipeline, err := annotate.NewFromConfig(cfg, annotate.WithLogger(log))

	if err != nil {
		return fmt.Errorf("error creating pipeline: %w", err)
	}

	data, err := os.ReadFile(detFile)

	if err != nil {
		return fmt.Errorf("error reading detections: %w", err)
	}

	dets, err := pipeline.DetectJSON(data)

	if err != nil {
		return fmt.Errorf("error extracting detections: %w", err)
	}

	if err := result.Encode(os.Stdout, dets, indent); err != nil {
		return err
	}

	img := gocv.IMRead(imgFile, gocv.IMReadColor)
	defer img.Close()

	if img.Empty() {
		return fmt.Errorf("error reading image from: %s", imgFile)
	}

	out, skipped, err := pipeline.Draw(img, dets)
	defer out.Close()

	if err != nil {
		return err
	}

	if ok := gocv.IMWrite(outFile, out); !ok {
		return fmt.Errorf("failed to save the image to %s", outFile)
	}

	log.WithFields(logrus.Fields{
		"detections": len(dets),
		"skipped":    len(skipped),
		"output":     outFile,
	}).Info("Saved annotated image")

	return nil
}
