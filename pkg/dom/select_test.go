package dom_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	depselect "github.com/goliatone/go-depselect"
	"github.com/goliatone/go-depselect/pkg/dom"
)

func emptySelectPage(t *testing.T) (*dom.Document, *dom.Select) {
	t.Helper()
	doc := parsePage(t, `<body><select id="dep"></select></body>`)
	sel, err := doc.Select("dep")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	return doc, sel
}

func TestSelectValue_EmptyControl(t *testing.T) {
	_, sel := emptySelectPage(t)
	if got := sel.Value(); got != "" {
		t.Fatalf("empty select should read as empty value, got %q", got)
	}
}

func TestSelectValue_FirstOptionFallback(t *testing.T) {
	doc := parsePage(t, `<select id="dep">
		<option value="a">A</option>
		<option value="b">B</option>
	</select>`)
	sel, _ := doc.Select("dep")
	if got := sel.Value(); got != "a" {
		t.Fatalf("unmarked select should read as its first option, got %q", got)
	}
}

func TestSelectValue_LastMarkWins(t *testing.T) {
	doc := parsePage(t, `<select id="dep">
		<option value="a" selected>A</option>
		<option value="b" selected>B</option>
	</select>`)
	sel, _ := doc.Select("dep")
	if got := sel.Value(); got != "b" {
		t.Fatalf("the last selection mark should win, got %q", got)
	}
}

func TestSelectValue_TextFallback(t *testing.T) {
	doc := parsePage(t, `<select id="dep"><option>Alabama</option></select>`)
	sel, _ := doc.Select("dep")
	if got := sel.Value(); got != "Alabama" {
		t.Fatalf("valueless option should fall back to its text, got %q", got)
	}
}

func TestSelectValue_BlankOptionIsAValue(t *testing.T) {
	doc := parsePage(t, `<select id="dep">
		<option value=""></option>
		<option value="b">B</option>
	</select>`)
	sel, _ := doc.Select("dep")
	if got := sel.Value(); got != "" {
		t.Fatalf("an explicit empty value attribute must not fall back to text, got %q", got)
	}
}

func TestAppendOption_DisplacesSelection(t *testing.T) {
	_, sel := emptySelectPage(t)

	sel.AppendOption(depselect.Option{Text: "A", Value: "a", Selected: true})
	sel.AppendOption(depselect.Option{Text: "B", Value: "b", Selected: true})
	sel.AppendOption(depselect.Option{Text: "C", Value: "c"})

	want := []depselect.Option{
		{Text: "A", Value: "a"},
		{Text: "B", Value: "b", Selected: true},
		{Text: "C", Value: "c"},
	}
	if diff := cmp.Diff(want, sel.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if got := sel.Value(); got != "b" {
		t.Fatalf("value should follow the surviving mark, got %q", got)
	}
}

func TestClearOptions_IncludesGroups(t *testing.T) {
	doc := parsePage(t, `<select id="dep">
		<optgroup label="south">
			<option value="al">Alabama</option>
		</optgroup>
		<option value="qc" selected>Quebec</option>
	</select>`)
	sel, _ := doc.Select("dep")

	if got := sel.Value(); got != "qc" {
		t.Fatalf("grouped select value: want qc, got %q", got)
	}
	if got := len(sel.Options()); got != 2 {
		t.Fatalf("grouped options should flatten in document order, got %d", got)
	}

	sel.ClearOptions()
	if got := len(sel.Options()); got != 0 {
		t.Fatalf("clear should remove grouped options too, got %d", got)
	}
	if got := sel.Value(); got != "" {
		t.Fatalf("cleared select should read as empty, got %q", got)
	}
}

func TestSetValue(t *testing.T) {
	doc := parsePage(t, `<select id="dep">
		<option value="a" selected>A</option>
		<option value="b">B</option>
	</select>`)
	sel, _ := doc.Select("dep")

	sel.SetValue("b")
	if got := sel.Value(); got != "b" {
		t.Fatalf("set value: want b, got %q", got)
	}

	// No option carries "zz": the marks clear and the control reverts to its
	// first option.
	sel.SetValue("zz")
	if got := sel.Value(); got != "a" {
		t.Fatalf("unmatched set value should revert to first option, got %q", got)
	}
	for _, opt := range sel.Options() {
		if opt.Selected {
			t.Fatalf("no mark should survive an unmatched set value: %#v", opt)
		}
	}
}

func TestChangeValue_FiresNativeChange(t *testing.T) {
	doc := parsePage(t, `<select id="dep">
		<option value="a" selected>A</option>
		<option value="b">B</option>
	</select>`)
	sel, _ := doc.Select("dep")

	events := 0
	if err := sel.On(depselect.EventChange, func() { events++ }); err != nil {
		t.Fatalf("on: %v", err)
	}

	sel.ChangeValue("b")
	if events != 1 {
		t.Fatalf("change value should fire one change event, got %d", events)
	}
	if got := sel.Value(); got != "b" {
		t.Fatalf("change value: want b, got %q", got)
	}

	sel.SetValue("a")
	if events != 1 {
		t.Fatalf("programmatic set value must not fire events, got %d", events)
	}
}

func TestInput_Value(t *testing.T) {
	doc := parsePage(t, `<body>
		<input id="plain" value="x">
		<textarea id="area">hello</textarea>
	</body>`)

	plain, err := doc.Input("plain")
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	plain.SetValue("y")
	if got := plain.Value(); got != "y" {
		t.Fatalf("input set value: want y, got %q", got)
	}

	area, err := doc.Input("area")
	if err != nil {
		t.Fatalf("textarea: %v", err)
	}
	if got := area.Value(); got != "hello" {
		t.Fatalf("textarea value: want hello, got %q", got)
	}
	area.SetValue("rewritten")
	if got := area.Value(); got != "rewritten" {
		t.Fatalf("textarea set value: want rewritten, got %q", got)
	}

	if _, err := doc.Input("dep"); err == nil {
		t.Fatalf("expected error resolving missing input")
	}
}

func TestAppendOption_SerializesEscaped(t *testing.T) {
	doc, sel := emptySelectPage(t)

	sel.AppendOption(depselect.Option{Text: `Tom & "Jerry" <LLC>`, Value: `a&b`})

	markup, err := doc.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(markup, "Tom &amp; &#34;Jerry&#34; &lt;LLC&gt;") {
		t.Fatalf("option text should serialize escaped:\n%s", markup)
	}
	if !strings.Contains(markup, `value="a&amp;b"`) {
		t.Fatalf("option value should serialize escaped:\n%s", markup)
	}
}
