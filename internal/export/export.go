// Package export renders plans and calendars as human-readable text for
// clipboard and print use. The output is not machine-parsed by any consumer.
package export

import (
	"fmt"
	"html"
	"strings"

	"ai-growth-planner/internal/calendar"
	"ai-growth-planner/internal/plan"
)

// PlanText renders a plan as plain text: header, inputs block, then one
// section per step with bulleted "what"/"how" lists and the output line.
func PlanText(p *plan.Plan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", p.Idea)
	fmt.Fprintf(&sb, "Generated: %s\n", p.CreatedAt)

	inputs := inputRows(p.Inputs)
	if len(inputs) > 0 {
		sb.WriteString("\n")
		for _, row := range inputs {
			fmt.Fprintf(&sb, "%s: %s\n", row[0], row[1])
		}
	}

	for i, step := range p.Steps {
		fmt.Fprintf(&sb, "\nStep %d: %s\n", i+1, step.Title)
		if step.Summary != "" {
			fmt.Fprintf(&sb, "%s\n", step.Summary)
		}
		if len(step.WhatThisDoes) > 0 {
			sb.WriteString("What this does:\n")
			for _, item := range step.WhatThisDoes {
				fmt.Fprintf(&sb, "- %s\n", item)
			}
		}
		if len(step.HowTo) > 0 {
			sb.WriteString("How to:\n")
			for _, item := range step.HowTo {
				fmt.Fprintf(&sb, "- %s\n", item)
			}
		}
		if step.Output != "" {
			fmt.Fprintf(&sb, "Output: %s\n", step.Output)
		}
	}

	return sb.String()
}

// CalendarText renders the 14-day calendar as plain text: a day header, the
// focus line, then the bulleted tasks.
func CalendarText(days []calendar.Day) string {
	var sb strings.Builder

	sb.WriteString("14-Day Action Calendar\n")
	for _, d := range days {
		fmt.Fprintf(&sb, "\nDay %d (%s)\n", d.Day, d.DateLabel)
		fmt.Fprintf(&sb, "Focus: %s\n", d.Focus)
		for _, task := range d.Tasks {
			fmt.Fprintf(&sb, "- %s\n", task)
		}
	}

	return sb.String()
}

// PlanHTML renders a plan as simple HTML for publishing.
func PlanHTML(p *plan.Plan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<p><i>%s</i></p>", html.EscapeString(p.Idea))

	inputs := inputRows(p.Inputs)
	if len(inputs) > 0 {
		sb.WriteString("<ul>")
		for _, row := range inputs {
			fmt.Fprintf(&sb, "<li><b>%s</b>: %s</li>", row[0], html.EscapeString(row[1]))
		}
		sb.WriteString("</ul>")
	}

	for i, step := range p.Steps {
		fmt.Fprintf(&sb, "<h2>Step %d: %s</h2>", i+1, html.EscapeString(step.Title))
		if step.Summary != "" {
			fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(step.Summary))
		}
		if len(step.WhatThisDoes) > 0 {
			sb.WriteString("<h3>What this does</h3><ul>")
			for _, item := range step.WhatThisDoes {
				fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(item))
			}
			sb.WriteString("</ul>")
		}
		if len(step.HowTo) > 0 {
			sb.WriteString("<h3>How to</h3><ul>")
			for _, item := range step.HowTo {
				fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(item))
			}
			sb.WriteString("</ul>")
		}
		if step.Output != "" {
			fmt.Fprintf(&sb, "<p><b>Output</b>: %s</p>", html.EscapeString(step.Output))
		}
	}

	return sb.String()
}

func inputRows(in plan.Inputs) [][2]string {
	all := [][2]string{
		{"Customer", in.Customer},
		{"Offer", in.Offer},
		{"Differentiator", in.Differentiator},
		{"Price", in.Price},
		{"Geography", in.Geography},
		{"14-day goal", in.Goal},
		{"Notes", in.Notes},
	}
	rows := make([][2]string, 0, len(all))
	for _, row := range all {
		if row[1] != "" {
			rows = append(rows, row)
		}
	}
	return rows
}
