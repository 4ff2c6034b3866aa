// Command climatch-cli is an interactive line-at-a-time front end
// over the same search engine as climatch-server. Unlike the HTTP
// server, it accepts the shorthand request forms: a bare integer
// searches by climate similarity to that city id, and any other line
// without braces searches by name.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/andreiashu/climatch"
	"github.com/andreiashu/climatch/internal/ingestion"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func main() {
	cmd := &cobra.Command{
		Use:   "climatch-cli",
		Short: "Search cities by name or climate similarity from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd.Context())
		},
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runREPL(ctx context.Context) error {
	records, err := ingestion.NewDemoLoader().Load(ctx)
	if err != nil {
		return fmt.Errorf("climatch-cli: loading cities: %w", err)
	}

	cities := make([]climatch.City, len(records))
	for i, r := range records {
		cities[i] = climatch.City{
			ID: r.ID, Names: r.Names, Latitude: r.Latitude, Longitude: r.Longitude,
			AdminUnit: r.AdminUnit, Country: r.Country, Population: r.Population,
			Elevation: r.Elevation, Region: r.Region, ModificationDate: r.ModificationDate,
			Climate: climatch.ClimateProfile{
				HumidityMonthly: r.HumidityMonthly, PPTMonthly: r.PPTMonthly,
				SRadMonthly: r.SRadMonthly, TMaxMonthly: r.TMaxMonthly,
				TMinMonthly: r.TMinMonthly, WSMonthly: r.WSMonthly,
			},
		}
	}

	engine, err := climatch.New(ctx, cities)
	if err != nil {
		return fmt.Errorf("climatch-cli: building engine: %w", err)
	}
	dispatcher := climatch.NewDispatcher(engine)

	fmt.Println(lipgloss.NewStyle().Bold(true).Render("climatch"))
	fmt.Println("Type a city name, a city id, or a JSON request. Ctrl+D to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		out, err := dispatcher.HandleLine(ctx, line)
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}
		fmt.Println(string(out))
	}
	return scanner.Err()
}
