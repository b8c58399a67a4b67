package manifest

import (
	"context"
	"errors"
	"testing"

	"github.com/reqwise/reqwise/internal/pypi"
	"github.com/reqwise/reqwise/internal/specifier"
)

// fakeChecker returns canned statuses per package name.
type fakeChecker struct {
	statuses map[string]pypi.Status
	calls    []string
}

func (f *fakeChecker) Check(_ context.Context, name string) pypi.Result {
	f.calls = append(f.calls, name)
	status, ok := f.statuses[name]
	if !ok {
		status = pypi.Exists
	}
	res := pypi.Result{Name: name, Status: status}
	if status == pypi.CheckFailed {
		res.Err = errors.New("connection refused")
	}
	return res
}

// fakeSource returns canned specifiers per package name.
type fakeSource struct {
	specs map[string]specifier.Specifier
}

func (f *fakeSource) SpecifierFor(_ context.Context, pkg string) (specifier.Specifier, error) {
	spec, ok := f.specs[pkg]
	if !ok {
		return specifier.Specifier{}, errors.New("unexpected prompt for " + pkg)
	}
	return spec, nil
}

func mustValidate(t *testing.T, kind specifier.Kind, raw string) specifier.Specifier {
	t.Helper()
	spec, err := specifier.Validate(kind, raw)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func TestEditor_AppendsSpecifiersToFlagged(t *testing.T) {
	source := &fakeSource{specs: map[string]specifier.Specifier{
		"requests": mustValidate(t, specifier.Range, "1.0,2.0"),
		"click":    mustValidate(t, specifier.Latest, ""),
	}}
	editor := NewEditor(nil, source)

	lines := Parse("# web\nrequests\nflask\nclick")
	out, outcomes, err := editor.Edit(context.Background(), lines, Options{
		Flagged: map[string]bool{"requests": true, "click": true},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "# web\nrequests>=1.0,<2.0\nflask\nclick"
	if got := Render(out); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}
	if outcomes[0].Spec != ">=1.0,<2.0" {
		t.Errorf("requests outcome spec = %q", outcomes[0].Spec)
	}
}

// A flagged line is rebuilt from the new specifier even when the old one
// carried its own formatting.
func TestEditor_FlaggedLineReplacesSpacedSpecifier(t *testing.T) {
	source := &fakeSource{specs: map[string]specifier.Specifier{
		"requests": mustValidate(t, specifier.Exact, "2.32.3"),
	}}
	editor := NewEditor(nil, source)

	out, _, err := editor.Edit(context.Background(), Parse("requests >= 1.0\nflask >= 2.0"), Options{
		Flagged: map[string]bool{"requests": true},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "requests==2.32.3\nflask >= 2.0"
	if got := Render(out); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

// Running with no flagged names and no verification is a no-op, spaced
// specifiers included.
func TestEditor_NoFlags_Idempotent(t *testing.T) {
	editor := NewEditor(nil, nil)
	content := "# pinned\nrequests==2.32.3\nflask>=2.0,<3.0\nnumpy >= 1.21\nscipy ~= 1.7"
	lines := Parse(content)

	out, _, err := editor.Edit(context.Background(), lines, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := Render(out); got != content {
		t.Errorf("edit was not idempotent:\n got: %q\nwant: %q", got, content)
	}

	// Second pass over the first pass's output stays identical.
	out2, _, err := editor.Edit(context.Background(), out, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := Render(out2); got != content {
		t.Errorf("second edit diverged: %q", got)
	}
}

func TestEditor_Verify_CommentOutPolicy(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]pypi.Status{
		"no-such-pkg": pypi.NotFound,
	}}
	editor := NewEditor(checker, nil)

	lines := Parse("requests\nno-such-pkg\nflask")
	out, outcomes, err := editor.Edit(context.Background(), lines, Options{
		Verify: true,
		Policy: PolicyCommentOut,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "requests\n# no-such-pkg - not found on the package index\nflask"
	if got := Render(out); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
	if outcomes[1].Kept {
		t.Error("not-found package should not be kept under comment policy")
	}
	if outcomes[1].Status != pypi.NotFound {
		t.Errorf("status = %q, want not-found", outcomes[1].Status)
	}
}

func TestEditor_Verify_DropPolicy(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]pypi.Status{
		"no-such-pkg": pypi.NotFound,
	}}
	editor := NewEditor(checker, nil)

	lines := Parse("requests\nno-such-pkg\nflask")
	out, _, err := editor.Edit(context.Background(), lines, Options{
		Verify: true,
		Policy: PolicyDrop,
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := Render(out); got != "requests\nflask" {
		t.Errorf("Render = %q, want dropped line", got)
	}
}

func TestEditor_Verify_KeepPolicy(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]pypi.Status{
		"no-such-pkg": pypi.NotFound,
	}}
	editor := NewEditor(checker, nil)

	lines := Parse("no-such-pkg")
	out, outcomes, err := editor.Edit(context.Background(), lines, Options{
		Verify: true,
		Policy: PolicyKeep,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := Render(out); got != "no-such-pkg" {
		t.Errorf("Render = %q, want line kept", got)
	}
	if !outcomes[0].Kept || outcomes[0].Status != pypi.NotFound {
		t.Errorf("outcome = %+v, want kept with not-found status", outcomes[0])
	}
}

// A transient check failure never removes a line, even under drop policy.
func TestEditor_Verify_CheckFailedAlwaysKept(t *testing.T) {
	checker := &fakeChecker{statuses: map[string]pypi.Status{
		"requests": pypi.CheckFailed,
	}}
	editor := NewEditor(checker, nil)

	for _, policy := range []InvalidPolicy{PolicyCommentOut, PolicyDrop, PolicyKeep} {
		out, outcomes, err := editor.Edit(context.Background(), Parse("requests"), Options{
			Verify: true,
			Policy: policy,
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := Render(out); got != "requests" {
			t.Errorf("policy %q: Render = %q, want line kept on transient failure", policy, got)
		}
		if outcomes[0].Status != pypi.CheckFailed {
			t.Errorf("policy %q: status = %q, want check-failed", policy, outcomes[0].Status)
		}
		if outcomes[0].Err == nil {
			t.Errorf("policy %q: check-failed outcome should carry the cause", policy)
		}
	}
}

// Reserved names are excluded without hitting the index at all.
func TestEditor_Verify_DenylistSkipsIndex(t *testing.T) {
	checker := &fakeChecker{}
	editor := NewEditor(checker, nil)

	out, outcomes, err := editor.Edit(context.Background(), Parse("pip\nrequests"), Options{
		Verify: true,
		Policy: PolicyCommentOut,
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, called := range checker.calls {
		if called == "pip" {
			t.Error("denied package should not be checked against the index")
		}
	}
	want := "# pip - reserved package name\nrequests"
	if got := Render(out); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
	if !outcomes[0].Denied {
		t.Error("pip outcome should be marked as denied")
	}
}

func TestEditor_Verify_SequentialManifestOrder(t *testing.T) {
	checker := &fakeChecker{}
	editor := NewEditor(checker, nil)

	_, _, err := editor.Edit(context.Background(), Parse("zlib\nalpha\nmiddle"), Options{Verify: true, Policy: PolicyKeep})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"zlib", "alpha", "middle"}
	if len(checker.calls) != len(want) {
		t.Fatalf("checked %d packages, want %d", len(checker.calls), len(want))
	}
	for i := range want {
		if checker.calls[i] != want[i] {
			t.Errorf("check %d = %q, want %q (manifest order)", i, checker.calls[i], want[i])
		}
	}
}

func TestEditor_VerifyWithoutChecker(t *testing.T) {
	editor := NewEditor(nil, nil)
	_, _, err := editor.Edit(context.Background(), Parse("requests"), Options{Verify: true})
	if err == nil {
		t.Error("Edit should fail when verification is requested without a checker")
	}
}

func TestParseInvalidPolicy(t *testing.T) {
	tests := []struct {
		input string
		want  InvalidPolicy
	}{
		{"comment", PolicyCommentOut},
		{"drop", PolicyDrop},
		{"keep", PolicyKeep},
		{"", PolicyCommentOut},
		{"nuke", PolicyCommentOut},
	}
	for _, tt := range tests {
		if got := ParseInvalidPolicy(tt.input); got != tt.want {
			t.Errorf("ParseInvalidPolicy(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
