package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
	colorDanger    = lipgloss.Color("196") // Red
)

// TabActive style for the selected screen or category tab.
var TabActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// TabInactive style for the other tabs.
var TabInactive = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// ChipActive style for the selected sub-category or status chip.
var ChipActive = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true).
	Padding(0, 1)

// ChipInactive style for unselected chips.
var ChipInactive = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 1)

// SelectedItem style for the currently highlighted row.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected rows.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// Title style for screen headings.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginBottom(1).
	Padding(0, 1)

// Price style for current prices.
var Price = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// OldPrice style for struck-through original prices.
var OldPrice = lipgloss.NewStyle().
	Foreground(colorMuted).
	Strikethrough(true)

// Discount style for the "-20%" badge.
var Discount = lipgloss.NewStyle().
	Foreground(colorWarning).
	Bold(true)

// Badge style for in-cart / wishlist markers.
var Badge = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginLeft(1)

// Panel style for bordered boxes (product detail, order summary).
var Panel = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true).
	Padding(0, 1)

// FieldError style for inline form validation messages.
var FieldError = lipgloss.NewStyle().
	Foreground(colorDanger)

// SuccessStyle for confirmations.
var SuccessStyle = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help text and empty states.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// FilterBar style for the search input bar.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// FilterBarCount style for the filtered count.
var FilterBarCount = lipgloss.NewStyle().
	Foreground(colorSecondary)

// StatusColor returns the color an order status is drawn in.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "Delivered":
		return colorSuccess
	case "Shipped":
		return colorPrimary
	case "Pending":
		return colorWarning
	case "Canceled":
		return colorDanger
	default:
		return colorSecondary
	}
}
