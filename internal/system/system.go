package system

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit. Long fps lists pipe a
// lot of frame data through ffmpeg processes in one run.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read the open-file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not raise the open-file limit: %v", err)
	}
}

// BestH264Encoder probes the local ffmpeg build for hardware H.264
// support. Preference order: VideoToolbox (macOS), NVENC (NVIDIA),
// then software libx264.
func BestH264Encoder() string {
	encoders := []string{"h264_videotoolbox", "h264_nvenc"}

	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, enc := range encoders {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}

// VideoDuration reads the container duration of a written clip via
// ffprobe, in seconds.
func VideoDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %v", path, err)
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration)
	if err != nil {
		return 0, err
	}

	return duration, nil
}

// HostSummary returns a one-line CPU/memory description for the
// performance report.
func HostSummary() string {
	cores, err := cpu.Counts(true)
	if err != nil {
		cores = 0
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Sprintf("%d cores", cores)
	}
	return fmt.Sprintf("%d cores | %.1f GiB RAM (%.0f%% used)",
		cores, float64(vm.Total)/(1<<30), vm.UsedPercent)
}
