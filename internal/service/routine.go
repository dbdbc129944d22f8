package service

import (
	"fmt"
	"strings"

	"littlestar/internal/models"
)

// Routine times of day. Anything else falls back to bedtime, the gentlest
// of the three.
const (
	RoutineMorning     = "morning"
	RoutineAfterSchool = "afterschool"
	RoutineBedtime     = "bedtime"
)

// RoutineBuilder renders the fixed check-in routines. Routines are template
// content, never generated: they must work offline and be identical every
// day so the child can rely on them.
type RoutineBuilder struct{}

// NewRoutineBuilder creates a new routine builder
func NewRoutineBuilder() *RoutineBuilder {
	return &RoutineBuilder{}
}

// Build renders the routine for the given time of day, personalized with the
// child's name.
func (b *RoutineBuilder) Build(timeOfDay string, profile models.ChildProfile) string {
	name := profile.Name
	switch strings.ToLower(strings.TrimSpace(timeOfDay)) {
	case RoutineMorning:
		return fmt.Sprintf(`Good morning, %s!

Let's start the day gently:
1. Stretch up tall like a sleepy bunny reaching for the sun.
2. Take one slow bunny breath: in through your nose, out through your mouth.
3. Think of one small thing you're curious about today.

You don't have to be ready for everything. Just one little hop at a time.`, name)
	case RoutineAfterSchool:
		return fmt.Sprintf(`Welcome back, %s!

Time to land softly:
1. Put your things down and shake out your arms like a wiggly rabbit.
2. Take three slow bunny breaths.
3. Ask yourself: what was one okay moment today? It can be tiny.

Whatever kind of day it was, it's over now. You're home.`, name)
	default:
		return fmt.Sprintf(`Time to get cozy, %s.

Let's wind down together:
1. Snuggle into your blanket like a bunny in a burrow.
2. Take five slow bunny breaths, softer each time.
3. Remember one gentle thing from today, and let the rest drift away.

You did enough today. Rest now. Tomorrow can wait.`, name)
	}
}
