package main

import (
	"log"
	"sync"

	"golang.design/x/clipboard"
)

// clipboardWriter initializes the system clipboard on first use and stays
// disabled if that fails (e.g. no display server).
type clipboardWriter struct {
	once sync.Once
	ok   bool
}

func (c *clipboardWriter) WriteText(s string) {
	c.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard: unavailable: %v", err)
			return
		}
		c.ok = true
	})
	if !c.ok {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	log.Printf("clipboard: copied %q", s)
}
