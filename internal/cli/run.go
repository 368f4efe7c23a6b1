package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/similigh/transcript-triage/pkg/models"
)

const (
	exitSentinel    = "exit"
	generateCommand = "/generate"
	promptText      = "Enter a conversation transcript (or 'exit' to exit): "
	maxLineBytes    = 1 << 20
)

// transcriptHandler is what the interactive loop drives
type transcriptHandler interface {
	Process(ctx context.Context, transcript string) (*models.ProcessResult, error)
	GenerateTranscript(ctx context.Context, category models.Category) (string, error)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Read transcripts interactively, one per line",
		Long: `Read transcripts from standard input, one per line, and process each in turn.

Type '/generate <bug|feature|neither>' to synthesise and process a test
transcript, or 'exit' to stop. Failures are logged and the loop continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			// a second Ctrl-C gets the default behaviour and kills the process
			context.AfterFunc(ctx, stop)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return runLoop(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), stdinIsTerminal(), a)
		},
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// inputLine is one line read from the interactive input
type inputLine struct {
	text    string
	tooLong bool
	err     error
}

// runLoop processes one transcript per line until the sentinel, end of input
// or cancellation of ctx
func runLoop(ctx context.Context, in io.Reader, out io.Writer, prompt bool, h transcriptHandler) error {
	lines := make(chan inputLine)
	done := make(chan struct{})
	defer close(done)
	go readLines(in, lines, done)

	for {
		if prompt {
			fmt.Fprint(out, promptText)
		}

		var (
			l  inputLine
			ok bool
		)
		select {
		case <-ctx.Done():
			if prompt {
				fmt.Fprintln(out)
			}
			return nil
		case l, ok = <-lines:
		}
		if !ok || ctx.Err() != nil {
			return nil
		}
		if l.err != nil {
			return fmt.Errorf("failed to read input: %w", l.err)
		}
		if l.tooLong {
			slog.Error("transcript too long, skipping", "limit_bytes", maxLineBytes)
			continue
		}

		line := strings.TrimSpace(l.text)
		switch {
		case line == "":
			continue
		case line == exitSentinel:
			return nil
		case line == generateCommand || strings.HasPrefix(line, generateCommand+" "):
			handleGenerate(ctx, out, h, strings.TrimSpace(strings.TrimPrefix(line, generateCommand)))
		default:
			handleTranscript(ctx, out, h, line)
		}
	}
}

// readLines feeds lines from in until end of input, a read error, or done
// is closed. The channel is closed on return.
func readLines(in io.Reader, lines chan<- inputLine, done <-chan struct{}) {
	defer close(lines)

	send := func(l inputLine) bool {
		select {
		case lines <- l:
			return true
		case <-done:
			return false
		}
	}

	r := bufio.NewReader(in)
	for {
		text, tooLong, err := readLine(r)
		switch {
		case err == io.EOF:
			if text != "" || tooLong {
				send(inputLine{text: text, tooLong: tooLong})
			}
			return
		case err != nil:
			send(inputLine{err: err})
			return
		}
		if !send(inputLine{text: text, tooLong: tooLong}) {
			return
		}
	}
}

// readLine reads up to the next newline. Lines over maxLineBytes are
// consumed but their text is dropped and tooLong is set.
func readLine(r *bufio.Reader) (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return string(buf), tooLong, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func handleGenerate(ctx context.Context, out io.Writer, h transcriptHandler, arg string) {
	category, err := models.ParseCategory(arg)
	if err != nil {
		fmt.Fprintf(out, "usage: %s <bug|feature|neither>\n", generateCommand)
		return
	}

	transcript, err := h.GenerateTranscript(ctx, category)
	if err != nil {
		slog.Error("failed to generate transcript", "category", category, "error", err)
		return
	}

	fmt.Fprintf(out, "Generated transcript:\n%s\n", transcript)
	handleTranscript(ctx, out, h, transcript)
}

func handleTranscript(ctx context.Context, out io.Writer, h transcriptHandler, transcript string) {
	result, err := h.Process(ctx, transcript)
	if err != nil {
		slog.Error("failed to process transcript", "error", err)
		return
	}
	printResult(out, result)
}
