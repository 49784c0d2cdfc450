package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Choice is the answer to the existing-output question.
type Choice int

const (
	ChoiceArchive Choice = iota
	ChoiceDelete
)

// Prompter reads the interactive session: archive-or-delete, target
// duration and the fps list. Invalid input re-prompts; a closed input
// stream is an error (the run cannot continue without an answer).
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// ArchiveChoice asks what to do with non-empty previous output.
func (p *Prompter) ArchiveChoice(outputDir string) (Choice, error) {
	for {
		fmt.Fprintf(p.out, "The %q directory is not empty. [A]rchive the old files or [D]elete them? (A/D): ", outputDir)
		line, err := p.readLine()
		if err != nil {
			return 0, fmt.Errorf("read archive choice: %w", err)
		}
		switch strings.ToLower(line) {
		case "a", "archive":
			return ChoiceArchive, nil
		case "d", "delete":
			return ChoiceDelete, nil
		}
		fmt.Fprintln(p.out, "Invalid choice. Enter 'A' to archive or 'D' to delete.")
	}
}

// Duration asks for the target clip length in seconds.
func (p *Prompter) Duration() (float64, error) {
	for {
		fmt.Fprint(p.out, "Enter the target video duration in seconds (e.g. 30): ")
		line, err := p.readLine()
		if err != nil {
			return 0, fmt.Errorf("read duration: %w", err)
		}
		d, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Enter a number of seconds.")
			continue
		}
		if d <= 0 {
			fmt.Fprintln(p.out, "Duration must be positive.")
			continue
		}
		return d, nil
	}
}

// FPSList asks for the comma-separated frame rates to render.
func (p *Prompter) FPSList() ([]int, error) {
	for {
		fmt.Fprint(p.out, "Enter desired FPS options, separated by commas (e.g. 5,3,2): ")
		line, err := p.readLine()
		if err != nil {
			return nil, fmt.Errorf("read fps list: %w", err)
		}
		list, err := ParseFPSList(line)
		if err != nil {
			fmt.Fprintf(p.out, "%v\n", err)
			continue
		}
		return list, nil
	}
}

// ParseFPSList parses a comma-separated list of positive integers,
// tolerating surrounding whitespace.
func ParseFPSList(line string) ([]int, error) {
	parts := strings.Split(line, ",")
	var out []int
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fps, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid fps value %q: enter whole numbers separated by commas", part)
		}
		if fps <= 0 {
			return nil, fmt.Errorf("fps values must be positive, got %d", fps)
		}
		out = append(out, fps)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no fps values given")
	}
	return out, nil
}
