package endscreen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// GoodJobSeconds is the survival time above which the banner adds praise.
const GoodJobSeconds = 100

const scriptTimeout = 200 * time.Millisecond

// Verdict turns a survival time into banner lines. A script sees `seconds`
// and must set `lines` to an array of strings.
type Verdict struct {
	compiled *tengo.Compiled
}

// CompileVerdict compiles a verdict script. An empty source yields the
// built-in rule.
func CompileVerdict(src []byte) (*Verdict, error) {
	if len(strings.TrimSpace(string(src))) == 0 {
		return &Verdict{}, nil
	}
	script := tengo.NewScript(src)
	_ = script.Add("seconds", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("endscreen: compile verdict: %w", err)
	}

	// Globals are only populated after a run.
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("endscreen: run verdict: %w", err)
	}
	if !compiled.IsDefined("lines") {
		return nil, fmt.Errorf("endscreen: verdict script does not define lines")
	}
	return &Verdict{compiled: compiled}, nil
}

// Lines runs the script for seconds. Script failures fall back to DefaultLines.
func (v *Verdict) Lines(seconds int) ([]string, error) {
	if v == nil || v.compiled == nil {
		return DefaultLines(seconds), nil
	}

	c := v.compiled.Clone()
	if err := c.Set("seconds", seconds); err != nil {
		return DefaultLines(seconds), err
	}
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return DefaultLines(seconds), fmt.Errorf("endscreen: run verdict: %w", err)
	}

	raw := c.Get("lines").Array()
	if len(raw) == 0 {
		return DefaultLines(seconds), fmt.Errorf("endscreen: verdict produced no lines")
	}
	lines := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return DefaultLines(seconds), fmt.Errorf("endscreen: verdict line %v is not a string", item)
		}
		lines = append(lines, s)
	}
	return lines, nil
}

func DefaultLines(seconds int) []string {
	lines := []string{fmt.Sprintf("You kept the fire alive for %d seconds.", seconds)}
	if seconds > GoodJobSeconds {
		lines = append(lines, "Good job!")
	}
	return lines
}
