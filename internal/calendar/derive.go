package calendar

import (
	"strings"
	"time"

	"ai-growth-planner/internal/plan"
)

// TotalDays is the length of the derived calendar.
const TotalDays = 14

// stepAllocation fixes how many of the 14 days each step owns. This is a
// policy constant, not derived from plan content.
var stepAllocation = [plan.StepCount]int{4, 6, 4}

// fillerTask is substituted when a day's bucket would otherwise be empty.
const fillerTask = "Execute the next best action from this step."

// fallbackFocus titles the three segments when no plan is available.
var fallbackFocus = [plan.StepCount]string{
	"Nail your positioning",
	"Get your first customers",
	"Keep them and grow",
}

// fallbackTasks are the canned per-position checklists used when a step has
// no usable bullets.
var fallbackTasks = [plan.StepCount][]string{
	{
		"Write a one-sentence positioning statement.",
		"Describe your ideal customer in one paragraph.",
		"List your top 3 competitors and how you differ.",
		"Set up a simple landing page or public profile.",
		"Draft your core offer and price.",
	},
	{
		"List 20 places your customers already gather.",
		"Send 10 personalized outreach messages.",
		"Publish one piece of useful content.",
		"Ask 3 people for referrals.",
		"Follow up with every unanswered message.",
		"Track every lead in a simple sheet.",
	},
	{
		"Call or message every active customer.",
		"Ask 2 customers for a testimonial.",
		"Fix the most common complaint you heard.",
		"Create a simple repeat-purchase incentive.",
		"Write down what worked and double down on it.",
	},
}

// Day is one derived calendar entry. Days are never persisted; they are
// recomputed from the stored plan on every view.
type Day struct {
	Day       int      `json:"day"`
	DateLabel string   `json:"dateLabel"`
	Focus     string   `json:"focus"`
	Tasks     []string `json:"tasks"`
}

// DeriveDays produces the 14-day task calendar for a plan, dated from today.
// A nil plan still yields a fully populated calendar built from the canned
// checklists.
func DeriveDays(p *plan.Plan) []Day {
	return DeriveDaysFrom(p, time.Now())
}

// DeriveDaysFrom is DeriveDays with an explicit current date. It is a pure
// function of the plan and the date.
func DeriveDaysFrom(p *plan.Plan, now time.Time) []Day {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	days := make([]Day, 0, TotalDays)
	num := 1
	for pos := 0; pos < plan.StepCount; pos++ {
		alloc := stepAllocation[pos]
		focus, pool := stepPool(p, pos)

		// Round-robin bucketing: item i lands on day i mod alloc, so
		// bucket sizes differ by at most one and list order is kept.
		buckets := make([][]string, alloc)
		for i, task := range pool {
			buckets[i%alloc] = append(buckets[i%alloc], task)
		}

		for d := 0; d < alloc; d++ {
			tasks := buckets[d]
			if len(tasks) == 0 {
				tasks = []string{fillerTask}
			}
			days = append(days, Day{
				Day:       num,
				DateLabel: today.AddDate(0, 0, num-1).Format("Mon, Jan 2"),
				Focus:     focus,
				Tasks:     tasks,
			})
			num++
		}
	}
	return days[:TotalDays]
}

// stepPool builds the candidate task pool for one step position: the howTo
// checklist first, then the explanatory whatThisDoes bullets, with the canned
// checklist substituted when the pool comes up empty.
func stepPool(p *plan.Plan, pos int) (focus string, pool []string) {
	focus = fallbackFocus[pos]
	if p != nil && pos < len(p.Steps) {
		step := p.Steps[pos]
		if title := strings.TrimSpace(step.Title); title != "" {
			focus = title
		}
		pool = append(pool, step.HowTo...)
		pool = append(pool, step.WhatThisDoes...)
	}
	if len(pool) == 0 {
		pool = fallbackTasks[pos]
	}
	return focus, pool
}
