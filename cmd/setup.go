package cmd

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/LinuxProativo/sandbox-utils/internal/config"
	"github.com/LinuxProativo/sandbox-utils/internal/dialog"
	"github.com/LinuxProativo/sandbox-utils/internal/fetch"
)

var (
	stepPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	stepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	stepFailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	setupTitleStyle  = lipgloss.NewStyle().Bold(true)
)

type stepStatus int

const (
	stepPending stepStatus = iota
	stepActive
	stepDone
	stepFailed
)

type setupStep struct {
	name   string
	status stepStatus
}

type (
	stepStartMsg int
	percentMsg   float64
	setupErrMsg  struct{ err error }
	setupDoneMsg struct{}
)

type setupModel struct {
	steps    []setupStep
	bar      progress.Model
	percent  float64
	err      error
	quitting bool
}

func newSetupModel(names []string) setupModel {
	steps := make([]setupStep, len(names))
	for i, n := range names {
		steps[i] = setupStep{name: n}
	}
	return setupModel{
		steps: steps,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

func (m setupModel) Init() tea.Cmd { return nil }

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case stepStartMsg:
		m.steps[int(msg)].status = stepActive
		m.percent = 0
	case percentMsg:
		m.percent = float64(msg)
	case setupErrMsg:
		for i := range m.steps {
			if m.steps[i].status == stepActive {
				m.steps[i].status = stepFailed
			}
		}
		m.err = msg.err
		return m, tea.Quit
	case setupDoneMsg:
		for i := range m.steps {
			m.steps[i].status = stepDone
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m setupModel) View() string {
	s := "\n  " + setupTitleStyle.Render("Setting up the environment") + "\n\n"
	for _, step := range m.steps {
		switch step.status {
		case stepActive:
			s += fmt.Sprintf("  > %s\n    %s\n", step.name, m.bar.ViewAs(m.percent))
		case stepDone:
			s += fmt.Sprintf("  %s %s\n", stepDoneStyle.Render("✓"), step.name)
		case stepFailed:
			s += fmt.Sprintf("  %s %s\n", stepFailStyle.Render("✗"), step.name)
		default:
			s += "  " + stepPendingStyle.Render("• "+step.name) + "\n"
		}
	}
	if m.err != nil {
		s += "\n  " + stepFailStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}
	return s + "\n"
}

var setupNonInteractive bool

// setupCmd downloads the rootfs bootstrap archive and unpacks it into
// the configured rootfs directory.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Download and unpack the rootfs bootstrap",
	RunE: func(_ *cobra.Command, _ []string) error {
		settings, err := config.LoadSettings(paths.ConfigFile)
		if err != nil {
			return err
		}

		rootfs := settings.Rootfs
		if rootfs == "" {
			rootfs = paths.DefaultRootfs
		}

		parsed, err := url.Parse(settings.BootstrapURL)
		if err != nil {
			return fmt.Errorf("invalid bootstrap URL: %w", err)
		}
		filename := path.Base(parsed.Path)
		archive := filepath.Join(paths.CacheDir, filename)

		if setupNonInteractive {
			fmt.Printf("Downloading %s...\n", filename)
			if err := fetch.Download(settings.BootstrapURL, paths.CacheDir, filename, nil); err != nil {
				return err
			}
			fmt.Printf("Extracting into %s...\n", rootfs)
			if err := fetch.Extract(archive, rootfs, nil); err != nil {
				return err
			}
		} else {
			if err := runSetupUI(settings.BootstrapURL, filename, archive, rootfs); err != nil {
				return err
			}
		}

		fmt.Println(dialog.SuccessSetup(paths.AppName + " run"))
		return nil
	},
}

// runSetupUI drives the two setup steps behind a progress display. The
// work happens on a goroutine that feeds messages into the program.
func runSetupUI(bootstrapURL, filename, archive, rootfs string) error {
	m := newSetupModel([]string{
		"Downloading " + filename,
		"Extracting into " + rootfs,
	})
	p := tea.NewProgram(m)

	go func() {
		report := func(done, total int64) {
			if total > 0 {
				p.Send(percentMsg(float64(done) / float64(total)))
			}
		}
		p.Send(stepStartMsg(0))
		if err := fetch.Download(bootstrapURL, paths.CacheDir, filename, report); err != nil {
			p.Send(setupErrMsg{err})
			return
		}
		p.Send(stepStartMsg(1))
		if err := fetch.Extract(archive, rootfs, report); err != nil {
			p.Send(setupErrMsg{err})
			return
		}
		p.Send(setupDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(setupModel); ok {
		if fm.err != nil {
			return fm.err
		}
		if fm.quitting {
			return fmt.Errorf("setup aborted")
		}
	}
	return nil
}

func init() {
	setupCmd.Flags().BoolVarP(&setupNonInteractive, "non-interactive", "y", false, "Run without the progress UI (no TTY required)")
	RootCmd.AddCommand(setupCmd)
}
