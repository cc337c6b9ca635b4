package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mysterioushouse/server/internal/house"
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/utterance"
)

// game plays turns in-process and keeps the session between them.
type game struct {
	engine   *house.Engine
	renderer *narration.Renderer
	userID   string
	locale   string
	driver   string

	attrs map[string]any
}

type turnResult struct {
	input  string
	intent string
	out    narration.Output
	end    bool
	err    error
}

// launch opens the session.
func (g *game) launch() turnResult {
	return g.play("", house.IntentLaunch, nil)
}

// say parses a typed line and plays it.
func (g *game) say(line string) turnResult {
	intent, slots := utterance.Parse(line)
	return g.play(line, intent, slots)
}

func (g *game) play(input, intent string, slots map[string]string) turnResult {
	reply := g.engine.HandleTurn(context.Background(), house.Turn{
		Intent:     intent,
		Slots:      slots,
		Attributes: g.attrs,
		UserID:     g.userID,
	})
	g.attrs = reply.Attributes()
	return turnResult{
		input:  input,
		intent: intent,
		out:    g.renderer.Render(g.locale, reply.Script),
		end:    reply.EndSession,
		err:    reply.Err,
	}
}

// describeSession lists the session attributes in key order.
func (g *game) describeSession() string {
	if len(g.attrs) == 0 {
		return "No session\n"
	}
	keys := make([]string, 0, len(g.attrs))
	for k := range g.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "• %s: %v\n", k, g.attrs[k])
	}
	return b.String()
}
