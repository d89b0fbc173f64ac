package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/output"
	"github.com/df07/go-sdf-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	envFile := flag.String("env", ".env", "Environment file loaded at startup")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := core.NewDefaultLogger("web", *debug)

	if _, err := os.Stat(*envFile); err == nil {
		if err := godotenv.Load(*envFile); err != nil {
			logger.Warnf("Error loading %s: %v", *envFile, err)
		}
	}

	scenesDir := os.Getenv("RAYTRACER_SCENES_DIR")
	if scenesDir == "" {
		scenesDir = "scenes"
	}

	webServer := server.NewServer(*port, scenesDir, logger)

	if os.Getenv("S3_BUCKET") != "" {
		cfg, err := output.S3ConfigFromEnv("")
		if err != nil {
			logger.Errorf("Invalid S3 configuration: %v", err)
			os.Exit(1)
		}
		sink, err := output.NewS3Sink(cfg, logger)
		if err != nil {
			logger.Errorf("Error creating S3 sink: %v", err)
			os.Exit(1)
		}
		webServer.SetUploadSink(sink)
		logger.Infof("Uploads enabled to bucket %s", cfg.Bucket)
	} else {
		logger.Infof("S3_BUCKET not set, uploads disabled")
	}

	logger.Infof("SDF Raytracer Web Server")
	logger.Infof("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		logger.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
