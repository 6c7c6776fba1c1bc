package app

import (
	"os"
	"strings"
	"testing"
)

// Integration tests drive the model through full keyboard flows the way a
// user would: resolve every conflict, confirm, apply, reload.

func TestResolveAndApplySingleFile(t *testing.T) {
	m := testResolveModel(t)
	m = sendKey(m, "tab")

	// Resolve both conflicts in alpha.go; the selection advances to the
	// next unresolved conflict after each choice.
	m = sendKey(m, "c")
	m = sendKey(m, "i")

	f := m.currentFile()
	if resolved, total := f.Progress(); resolved != 2 || total != 2 {
		t.Fatalf("progress = %d/%d, want 2/2", resolved, total)
	}
	if m.notifiedAllResolved {
		t.Error("session still has beta.go pending, all-resolved should not fire")
	}

	// Apply through the confirm modal
	m = sendKey(m, "a")
	result, cmd := m.Update(keyPress("enter"))
	m = result.(*Model)
	for _, msg := range collectMsgs(cmd) {
		if applied, ok := msg.(ApplyResultMsg); ok {
			result, _ = m.Update(applied)
			m = result.(*Model)
		}
	}

	if !f.Applied {
		t.Fatal("expected file to be marked applied")
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "<<<<<<<") {
		t.Error("applied file still contains conflict markers")
	}
	if !strings.Contains(content, "const limit = 10") {
		t.Error("applied file missing the kept current side")
	}
	if !strings.Contains(content, `var mode = "safe"`) {
		t.Error("applied file missing the kept incoming side")
	}
	if strings.Contains(content, "const limit = 20") {
		t.Error("applied file contains the dropped incoming side")
	}

	// The pane reopened the applied file and found nothing left to resolve
	if m.conflicts.Len() != 0 {
		t.Errorf("conflicts.Len() = %d, want 0 after apply", m.conflicts.Len())
	}
	if !strings.Contains(m.conflicts.View(), "No conflict markers found.") {
		t.Error("expected the empty-store message after apply")
	}
	if !m.footer.HasFlash() {
		t.Error("expected an applied flash message")
	}
}

func TestResolveAndApplyAllFiles(t *testing.T) {
	m := testResolveModel(t)

	// alpha.go
	m = sendKey(m, "tab")
	m = sendKey(m, "c")
	m = sendKey(m, "c")

	// beta.go
	m = sendKey(m, "tab")
	m = sendKey(m, "j")
	m = sendKey(m, "enter")
	m = sendKey(m, "c")

	if !m.sess.AllResolved() {
		t.Fatal("expected every conflict in the session to be resolved")
	}

	m = sendKey(m, "A")
	if !m.pendingApplyAll {
		t.Fatal("expected A to arm the apply-all confirm")
	}
	result, cmd := m.Update(keyPress("enter"))
	m = result.(*Model)
	for _, msg := range collectMsgs(cmd) {
		if applied, ok := msg.(ApplyAllResultMsg); ok {
			result, _ = m.Update(applied)
			m = result.(*Model)
		}
	}

	for _, f := range m.sess.Files {
		if !f.Applied {
			t.Errorf("%s not applied", f.Path)
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if strings.Contains(string(data), "<<<<<<<") {
			t.Errorf("%s still contains conflict markers", f.Path)
		}
	}
	if !strings.Contains(string(mustRead(t, m.sess.Files[1].Path)), "alpha") {
		t.Error("beta.go should keep the current side")
	}
	if !m.footer.HasFlash() {
		t.Error("expected an applied flash message")
	}
}

func TestReloadDiscardsResolutionsAndRereadsDisk(t *testing.T) {
	m := testResolveModel(t)
	m = sendKey(m, "tab")
	m = sendKey(m, "c")

	f := m.currentFile()
	if resolved, _ := f.Progress(); resolved != 1 {
		t.Fatalf("resolved = %d, want 1", resolved)
	}

	// The file changes on disk behind the session's back
	if err := os.WriteFile(f.Path, []byte(singleConflictContent), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m = sendKey(m, "r")

	f = m.currentFile()
	if resolved, total := f.Progress(); resolved != 0 || total != 1 {
		t.Errorf("progress after reload = %d/%d, want 0/1", resolved, total)
	}
	if m.conflicts.Len() != 1 {
		t.Errorf("conflicts.Len() = %d, want 1 from the rewritten file", m.conflicts.Len())
	}
	if m.notifiedAllResolved {
		t.Error("reload should re-arm the all-resolved notification")
	}
	if !m.footer.HasFlash() {
		t.Error("expected a reloaded flash message")
	}
}

func TestReloadDiffPairPicksUpChanges(t *testing.T) {
	m := testDiffModel(t)

	before := m.diffView.Stats()
	if before.Added == 0 && before.Removed == 0 {
		t.Fatal("fixture pair should differ")
	}

	// Make the revised side identical to the original
	if err := os.WriteFile(m.revisedPath, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m = sendKey(m, "r")

	after := m.diffView.Stats()
	if after.Added != 0 || after.Removed != 0 {
		t.Errorf("stats after reload = +%d -%d, want +0 -0", after.Added, after.Removed)
	}
	if !m.footer.HasFlash() {
		t.Error("expected a reloaded flash message")
	}
}

func TestAllResolvedNotifiesOnce(t *testing.T) {
	m := testResolveModel(t)

	// Resolve everything: alpha.go then beta.go
	m = sendKey(m, "tab")
	m = sendKey(m, "c")
	m = sendKey(m, "c")
	m = sendKey(m, "tab")
	m = sendKey(m, "j")
	m = sendKey(m, "enter")
	m = sendKey(m, "c")

	if !m.notifiedAllResolved {
		t.Fatal("expected the all-resolved notification to fire")
	}
	if !m.footer.HasFlash() {
		t.Error("expected an all-resolved flash message")
	}

	// Re-resolving an already resolved conflict must not flash again
	m.footer.ClearFlash()
	m = sendKey(m, "i")
	if m.footer.HasFlash() {
		t.Error("all-resolved flash fired twice")
	}
}

// mustRead reads a file or fails the test.
func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile %s: %v", path, err)
	}
	return data
}
