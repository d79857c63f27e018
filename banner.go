// Copyright 2025 The FrappeAPI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package frappeapi

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
)

// bannerGradient colors the ASCII art, cycled per character.
var bannerGradient = []string{"12", "14", "10", "11"}

// PrintBanner writes the startup banner: the API title as ASCII art,
// the service identity, and the registered routes. The writer is
// wrapped in a colorprofile.Writer, so ANSI colors are downsampled to
// the terminal's capabilities and stripped entirely for non-TTY
// output and NO_COLOR environments.
func (a *App) PrintBanner(w io.Writer, addr string) {
	cw := colorprofile.NewWriter(w, os.Environ())

	art := figure.NewFigure(a.title, "", false)

	var styled strings.Builder
	for _, line := range art.Slicify() {
		if strings.TrimSpace(line) == "" {
			styled.WriteString("\n")
			continue
		}
		for i, char := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(bannerGradient[i%len(bannerGradient)])).
				Bold(true)
			styled.WriteString(style.Render(string(char)))
		}
		styled.WriteString("\n")
	}

	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(12).PaddingLeft(2)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)

	displayAddr := addr
	if strings.HasPrefix(addr, ":") {
		displayAddr = "0.0.0.0" + addr
	}
	if displayAddr != "" {
		displayAddr = "http://" + displayAddr
	}

	var out strings.Builder
	out.WriteString(categoryStyle.Render("Service") + "\n")
	out.WriteString(labelStyle.Render("Version:") + "  " + valueStyle.Foreground(lipgloss.Color("14")).Render(a.version) + "\n")
	if displayAddr != "" {
		out.WriteString(labelStyle.Render("Address:") + "  " + valueStyle.Foreground(lipgloss.Color("10")).Render(displayAddr) + "\n")
	}

	fmt.Fprintln(cw)
	fmt.Fprint(cw, styled.String())
	fmt.Fprintln(cw)
	fmt.Fprint(cw, out.String())

	if a.registry.Len() > 0 {
		fmt.Fprintln(cw)
		a.renderRoutesTable(cw)
	}

	fmt.Fprintln(cw)
}

// PrintRoutes writes the registered routes as a table to stdout.
func (a *App) PrintRoutes() {
	if a.registry.Len() == 0 {
		fmt.Println("No routes registered")
		return
	}
	a.renderRoutesTable(colorprofile.NewWriter(os.Stdout, os.Environ()))
}

// methodColors maps HTTP verbs onto table colors.
var methodColors = map[string]string{
	"GET":     "10",
	"POST":    "12",
	"PUT":     "11",
	"DELETE":  "9",
	"PATCH":   "13",
	"HEAD":    "14",
	"OPTIONS": "7",
}

func (a *App) renderRoutesTable(w io.Writer) {
	routes := a.registry.Routes()
	if len(routes) == 0 {
		return
	}

	rows := make([][]string, 0, len(routes))
	for _, r := range routes {
		methods := make([]string, 0, len(r.Methods()))
		for _, m := range r.Methods() {
			color, ok := methodColors[m]
			if !ok {
				color = "7"
			}
			methods = append(methods, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(m))
		}

		guest := "-"
		if r.AllowGuest() {
			guest = "guest"
		}

		rows = append(rows, []string{
			strings.Join(methods, " "),
			r.Pattern(),
			r.Name(),
			guest,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
			if row == 0 {
				style = style.Bold(true).Foreground(lipgloss.Color("230"))
			}
			return style
		}).
		Headers("Method", "Path", "Name", "Access").
		Rows(rows...).
		Width(80)

	fmt.Fprintln(w, t.Render())
}
