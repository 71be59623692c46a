package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/palette"
)

// colorsCommand creates the colors command for inspecting the palettes.
func (c *CLI) colorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Show the repeat and HMM state palettes",
	}

	cmd.AddCommand(c.colorsRainbowCommand())
	cmd.AddCommand(c.colorsStatesCommand())
	cmd.AddCommand(c.colorsAnnotateCommand())

	return cmd
}

// colorsRainbowCommand prints the colors given to the first n repeats of a
// track.
func (c *CLI) colorsRainbowCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "rainbow",
		Short: "Print the colors assigned to repeats by position",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "count must be at least 1, got %d", count)
			}
			fmt.Println(StyleTitle.Render("Repeat colors"))
			for i := 0; i < count; i++ {
				hex := palette.HTML(palette.Rainbow(i))
				fmt.Printf("%s %s %s\n", swatch(hex), StyleNumber.Render(fmt.Sprintf("%3d", i+1)), StyleValue.Render(hex))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 8, "number of repeats")
	return cmd
}

// colorsStatesCommand prints the state colors of an HMM with the given
// number of match columns.
func (c *CLI) colorsStatesCommand() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "states",
		Short: "Print the colors of the states of a profile HMM",
		RunE: func(cmd *cobra.Command, args []string) error {
			if length < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "length must be at least 1, got %d", length)
			}
			fmt.Println(stateTable(stateModel(length)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "l", 5, "number of match states")
	return cmd
}

// colorsAnnotateCommand colors a sequence by its state path as HTML.
func (c *CLI) colorsAnnotateCommand() *cobra.Command {
	var (
		path   string
		output string
		length int
		opts   palette.AnnotateOptions
	)
	cmd := &cobra.Command{
		Use:   "annotate [sequence]",
		Short: "Write a sequence as HTML colored by its HMM state path",
		Example: `  repeatmap colors annotate ACDEF --path N,M1,M2,I2,C --length 2
  repeatmap colors annotate ACDEF --path N,M1,M2,I2,C --length 2 --trim N,C -o seq.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			states := strings.Split(path, ",")
			m := stateModel(length)
			if length < 1 {
				m = stateModel(countMatchStates(states))
			}
			html, err := palette.AnnotateHTML(palette.StateHTML(m), args[0], states, opts)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Println(html)
				return nil
			}
			if err := os.WriteFile(output, []byte(html+"\n"), 0o644); err != nil {
				return err
			}
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "comma-separated state per residue, e.g. N,M1,I1,C")
	cmd.Flags().IntVarP(&length, "length", "l", 0, "number of match states (default from the path)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "residues per line (0 disables wrapping)")
	cmd.Flags().StringSliceVar(&opts.Trim, "trim", nil, "states to leave out")
	cmd.Flags().StringVar(&opts.Style, "style", "", "extra CSS for every residue")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

// stateModel names the states of an HMM with n match columns M1..Mn and
// insertion states I0..In-1.
func stateModel(n int) palette.Model {
	m := palette.Model{Length: n}
	for i := 0; i < n; i++ {
		m.Insertion = append(m.Insertion, "I"+strconv.Itoa(i))
		m.Match = append(m.Match, "M"+strconv.Itoa(i+1))
	}
	return m
}

// countMatchStates returns the highest match column named in states.
func countMatchStates(states []string) int {
	n := 0
	for _, s := range states {
		if !strings.HasPrefix(s, "M") && !strings.HasPrefix(s, "I") {
			continue
		}
		i, err := strconv.Atoi(s[1:])
		if err != nil {
			continue
		}
		if s[0] == 'I' {
			i++
		}
		n = max(n, i)
	}
	return n
}

func stateTable(m palette.Model) string {
	colors := palette.StateHTML(m)
	cell := func(state string) string {
		return swatch(colors[state]) + " " + colors[state]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("column", "match", "insertion")
	t.Row("N", cell(palette.StateN), "")
	for i := 0; i < m.Length; i++ {
		t.Row(strconv.Itoa(i+1), cell(m.Match[i]), cell(m.Insertion[i]))
	}
	t.Row("C", cell(palette.StateC), "")
	return t.Render()
}
