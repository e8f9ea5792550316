package command

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	path := writeFile(t, "node.prom", "first_total 1\n")

	var out syncBuffer
	app := testApp(t, &out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- app.RunContext(ctx, []string{"promwalk", "--output", "exposition", "watch", "--interval", "10ms", path})
	}()

	waitFor(t, &out, "first_total 1")
	if err := os.WriteFile(path, []byte("second_total 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, &out, "second_total 2")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_Args(t *testing.T) {
	if _, err := runApp(t, "watch"); err == nil {
		t.Error("watch without FILE should fail")
	}
	a := writeFile(t, "a.prom", "")
	if _, err := runApp(t, "watch", a, a); err == nil {
		t.Error("watch with two files should fail")
	}
}

func waitFor(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("output never contained %q:\n%s", want, out.String())
}
