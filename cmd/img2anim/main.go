package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/ivlev/img2anim/internal/config"
	"github.com/ivlev/img2anim/internal/encoder"
	"github.com/ivlev/img2anim/internal/engine"
	"github.com/ivlev/img2anim/internal/output"
	"github.com/ivlev/img2anim/internal/prompt"
	"github.com/ivlev/img2anim/internal/source"
	"github.com/ivlev/img2anim/internal/system"
)

const (
	defaultInputDir   = "images"
	defaultOutputDir  = "output"
	defaultArchiveDir = "output_archive"
	defaultProfile    = "img2anim.yaml"
)

func main() {
	system.InitResourceLimits()

	inputPtr := flag.String("input", "", "Source of frames: a directory of numbered images or a PDF (default: images/)")
	profilePtr := flag.String("profile", defaultProfile, "Profile file that pre-answers the prompts")
	savePtr := flag.Bool("save-profile", false, "Save the answers of this run back to the profile file")
	namePtr := flag.String("name", "", "Base name of the output files (default: animation)")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Parallel frame decoders")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 = auto; x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	dpiPtr := flag.Int("dpi", 150, "Render DPI for PDF input")
	statsPtr := flag.Bool("stats", false, "Print a performance report after the run")

	flag.Parse()

	fmt.Println("--- img2anim: stills -> looping GIF + MP4 ---")

	profile := loadProfile(*profilePtr)

	inputPath := firstNonEmpty(*inputPtr, profile.Input, defaultInputDir)
	name := firstNonEmpty(*namePtr, profile.Name, "animation")

	workers := *workersPtr
	if profile.Workers > 0 && *workersPtr == runtime.NumCPU() {
		workers = profile.Workers
	}
	dpi := *dpiPtr
	if profile.DPI > 0 {
		dpi = profile.DPI
	}

	prompter := prompt.New(os.Stdin, os.Stdout)
	manager := output.NewManager(defaultOutputDir, defaultArchiveDir)

	hasPrev, err := manager.HasPrevious()
	if err != nil {
		log.Fatalf("[-] Could not inspect %s: %v", defaultOutputDir, err)
	}
	if hasPrev {
		choice, err := prompter.ArchiveChoice(defaultOutputDir)
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
		switch choice {
		case prompt.ChoiceArchive:
			dest, err := manager.Archive()
			if err != nil {
				log.Fatalf("[-] %v", err)
			}
			fmt.Printf("[*] Archived existing output to %s\n", dest)
		case prompt.ChoiceDelete:
			if err := manager.Delete(); err != nil {
				log.Fatalf("[-] %v", err)
			}
			fmt.Printf("[*] Deleted existing contents of %s\n", defaultOutputDir)
		}
	}

	duration := profile.Duration
	if duration <= 0 {
		duration, err = prompter.Duration()
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
	}

	fpsList := profile.FPS
	if len(fpsList) == 0 {
		fpsList, err = prompter.FPSList()
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
	}

	src, err := openSource(inputPath, dpi)
	if err != nil {
		log.Fatalf("[-] Could not open frame source: %v", err)
	}
	defer src.Close()

	if _, _, err := manager.Prepare(); err != nil {
		log.Fatalf("[-] %v", err)
	}

	encoderName := system.BestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Hardware encoder detected: %s\n", encoderName)
	}

	quality := *qualityPtr
	if quality == 0 && profile.Quality > 0 {
		quality = profile.Quality
	}
	if quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			quality = 75
		case "h264_nvenc":
			quality = 28
		default:
			quality = 23
		}
	}

	cfg := &config.Config{
		Name:          name,
		InputPath:     inputPath,
		OutputDir:     defaultOutputDir,
		ArchiveDir:    defaultArchiveDir,
		TotalDuration: duration,
		FPSList:       fpsList,
		Workers:       workers,
		Quality:       quality,
		DPI:           dpi,
		OutroURL:      profile.OutroURL,
		VideoEncoder:  encoderName,
		ShowStats:     *statsPtr,
	}

	project := engine.NewProject(cfg, src, &encoder.FFmpegEncoder{})
	if err := project.Run(context.Background()); err != nil {
		log.Fatalf("[-] %v", err)
	}

	if *savePtr {
		saved := &config.Profile{
			Name:     name,
			Input:    inputPath,
			Duration: duration,
			FPS:      fpsList,
			Workers:  workers,
			Quality:  quality,
			DPI:      dpi,
			OutroURL: profile.OutroURL,
		}
		if err := config.WriteProfile(saved, *profilePtr); err != nil {
			log.Fatalf("[-] Could not save profile: %v", err)
		}
		fmt.Printf("[*] Profile saved to %s\n", *profilePtr)
	}

	fmt.Println("[+++] Finished generating all video and GIF options.")
}

// loadProfile reads the profile file if it exists. A missing file is
// only an error when the user pointed at it explicitly.
func loadProfile(path string) *config.Profile {
	p, err := config.ReadProfile(path)
	if err != nil {
		if os.IsNotExist(err) && path == defaultProfile {
			return &config.Profile{}
		}
		log.Fatalf("[-] %v", err)
	}
	fmt.Printf("[*] Using profile: %s\n", path)
	return p
}

func openSource(path string, dpi int) (source.Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return source.NewPDFSource(path, dpi)
	}
	return source.NewImageSource(path)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
