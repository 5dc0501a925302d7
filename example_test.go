package tiltapp_test

import (
	"fmt"
	"os"

	"github.com/bft-labs/tiltapp"
)

// ExampleOpen demonstrates how to embed the break timer in your application.
func ExampleOpen() {
	dir, err := os.MkdirTemp("", "tiltapp-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	t, err := tiltapp.Open(tiltapp.Config{StateDir: dir}, tiltapp.WithManualTicks())
	if err != nil {
		fmt.Printf("failed to open: %v\n", err)
		return
	}

	if err := t.Start(3); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}
	fmt.Println(t.State(), t.Snapshot().Total)
	_ = t.Close()

	// A later process picks the break up again.
	again, err := tiltapp.Open(tiltapp.Config{StateDir: dir}, tiltapp.WithManualTicks())
	if err != nil {
		fmt.Printf("failed to reopen: %v\n", err)
		return
	}
	defer again.Close()
	fmt.Println(again.CheckRestore(), again.State())

	// Output:
	// Running 180
	// true Running
}

// Example_journal demonstrates the emotion journal.
func Example_journal() {
	dir, err := os.MkdirTemp("", "tiltapp-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	t, err := tiltapp.Open(tiltapp.Config{StateDir: dir, Backend: "sqlite"})
	if err != nil {
		fmt.Printf("failed to open: %v\n", err)
		return
	}
	defer t.Close()

	if _, err := t.Journal.Add("tilted", "😡", "third bad beat"); err != nil {
		fmt.Println(err)
		return
	}
	entries, _ := t.Journal.List()
	fmt.Println(len(entries), entries[0].Emotion)

	// Output: 1 tilted
}
