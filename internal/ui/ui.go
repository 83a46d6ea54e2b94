package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	domainErrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Strong  = color.New(color.FgWhite, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

// MateEmoji prefixes spinner messages, a nod to the tool's name.
const MateEmoji = "🧉"

// interactive reports whether stdout is a terminal. Spinners animate with
// carriage returns, which garble piped or redirected output.
var interactive = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// SmartSpinner animates a progress indicator while a remote call runs. On
// non-terminal output it stays silent and only the closing Success or Error
// line is written.
type SmartSpinner struct {
	spinner *spinner.Spinner
}

// NewSmartSpinner creates a spinner with an initial message.
func NewSmartSpinner(message string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+MateEmoji+" "+message),
	)
	return &SmartSpinner{spinner: s}
}

func (s *SmartSpinner) Start() {
	if !interactive {
		return
	}
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
}

// Success stops the animation and prints the closing line.
func (s *SmartSpinner) Success(msg string) {
	s.Stop()
	PrintSuccess(os.Stdout, msg)
}

// Error stops the animation and prints the failure line.
func (s *SmartSpinner) Error(msg string) {
	s.Stop()
	PrintError(os.Stdout, msg)
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Success.Sprint("✅"), Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(msg string) {
	fmt.Printf("%s %s\n", Warning.Sprint("⚠️"), Warning.Sprint(msg))
}

func PrintInfo(msg string) {
	fmt.Printf("%s %s\n", Info.Sprint("ℹ️"), Info.Sprint(msg))
}

func PrintSectionBanner(title string) {
	rule := color.New(color.FgCyan).Sprint(strings.Repeat("━", 23))
	fmt.Printf("\n%s\n%s %s\n%s\n\n", rule, Accent.Sprint("🚀"), Accent.Sprint(title), rule)
}

func PrintKeyValue(key, value string) {
	fmt.Printf("   %s %s\n", Dim.Sprint(key+":"), Strong.Sprint(value))
}

// HandleAppError renders an application error with its type, detail and
// suggestion. Plain errors fall back to a single error line. If translations
// is nil the suggestion prefix stays in English.
func HandleAppError(err error, translations ...*i18n.Translations) {
	if err == nil {
		return
	}

	var t *i18n.Translations
	if len(translations) > 0 && translations[0] != nil {
		t = translations[0]
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(os.Stdout, err.Error())
		return
	}

	fmt.Println()
	_, _ = Error.Printf("❌ %s: %s\n", appErr.Type, appErr.Message)

	if details, ok := appErr.Context["details"].(string); ok && details != "" {
		_, _ = Dim.Printf("   Details: %s\n", details)
	}
	if appErr.Err != nil {
		_, _ = Dim.Printf("   Details: %v\n", appErr.Err)
	}

	if appErr.Suggestion != "" {
		fmt.Println()
		tryPrefix := "💡 Try: "
		if t != nil {
			tryPrefix = t.GetMessage("ui_error.try_suggestion", 0, nil)
		}
		_, _ = Info.Print(tryPrefix)
		for i, line := range strings.Split(appErr.Suggestion, "\n") {
			if i > 0 {
				fmt.Print("       ")
			}
			fmt.Println(line)
		}
	}
	fmt.Println()
}

func AskConfirmation(question string) bool {
	fmt.Printf("\n%s (y/n): ", Info.Sprint(question))
	var answer string
	_, _ = fmt.Scanln(&answer)
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "si":
		return true
	}
	return false
}
