package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pythonix/internal/engine"
)

// Each board cell is two terminal columns wide so the grid looks
// roughly square.
const cellWidth = 2

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	snakeBodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	snakeHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	powerBodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	hudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	powerBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Padding(0, 1)

	gameOverStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 3).
			Align(lipgloss.Center)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// foodStyles maps food kinds to display styles.
var foodStyles = map[engine.FoodKind]lipgloss.Style{
	engine.FoodNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	engine.FoodPower:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	engine.FoodSlow:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	engine.FoodHazard: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
}

// foodRunes maps food kinds to board glyphs.
var foodRunes = map[engine.FoodKind]string{
	engine.FoodNormal: "()",
	engine.FoodPower:  "$$",
	engine.FoodSlow:   "~~",
	engine.FoodHazard: "XX",
}

// renderBoard draws the playfield grid from a snapshot.
func renderBoard(snap engine.Snapshot) string {
	type cellGlyph struct {
		text  string
		style lipgloss.Style
	}

	grid := make(map[engine.Cell]cellGlyph, len(snap.Snake)+1)

	bodyStyle := snakeBodyStyle
	if snap.PowerActive {
		bodyStyle = powerBodyStyle
	}
	for _, c := range snap.Snake {
		grid[c] = cellGlyph{text: "██", style: bodyStyle}
	}
	if len(snap.Snake) > 0 {
		grid[snap.Head()] = cellGlyph{text: "██", style: snakeHeadStyle}
	}
	if snap.Phase != engine.PhaseIdle {
		grid[snap.Food.Cell] = cellGlyph{
			text:  foodRunes[snap.Food.Kind],
			style: foodStyles[snap.Food.Kind],
		}
	}

	var sb strings.Builder
	sb.Grow(snap.Width*cellWidth*snap.Height + snap.Height)
	for y := 0; y < snap.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < snap.Width; x++ {
			if g, ok := grid[engine.Cell{X: x, Y: y}]; ok {
				sb.WriteString(g.style.Render(g.text))
			} else {
				sb.WriteString(strings.Repeat(" ", cellWidth))
			}
		}
	}

	return boardStyle.Render(sb.String())
}

// renderHUD draws the status line above the board.
func renderHUD(snap engine.Snapshot) string {
	parts := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Length: %d", len(snap.Snake)),
		fmt.Sprintf("Speed: %dms", snap.IntervalMS),
		fmt.Sprintf("Time: %ds", snap.ElapsedSecs),
	}
	line := hudStyle.Render(strings.Join(parts, "  |  "))
	if snap.PowerActive {
		line += "  " + powerBadgeStyle.Render("POWER")
	}
	return line
}

// renderGameOver draws the end-of-game overlay.
func renderGameOver(snap engine.Snapshot, submitStatus string) string {
	var sb strings.Builder
	sb.WriteString("GAME OVER\n\n")
	sb.WriteString(fmt.Sprintf("Score: %d\n", snap.Score))
	sb.WriteString(fmt.Sprintf("Foods eaten: %d\n", snap.FoodsEaten))
	if submitStatus != "" {
		sb.WriteString("\n")
		sb.WriteString(submitStatus)
		sb.WriteString("\n")
	}
	sb.WriteString("\nPress r to restart, q to quit")
	return gameOverStyle.Render(sb.String())
}
