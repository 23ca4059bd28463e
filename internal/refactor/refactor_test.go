package refactor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bethropolis/jsrefactor/internal/buffer"
	"github.com/bethropolis/jsrefactor/internal/edit"
	"github.com/bethropolis/jsrefactor/internal/messages"
	"github.com/bethropolis/jsrefactor/internal/template"
	"github.com/bethropolis/jsrefactor/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeEditor struct {
	*buffer.TextBuffer
	sel      types.Selection
	applies  int
	messages []string
}

func newEditor(src string, sel types.Selection) *fakeEditor {
	return &fakeEditor{TextBuffer: buffer.New([]byte(src)), sel: sel}
}

func (f *fakeEditor) Selection() types.Selection       { return f.sel }
func (f *fakeEditor) SetSelection(sel types.Selection) { f.sel = sel }
func (f *fakeEditor) ShowInlineMessage(_ int, msg string) {
	f.messages = append(f.messages, msg)
}

func (f *fakeEditor) Apply(edits []types.TextEdit) (types.EditInfo, error) {
	f.applies++
	return f.TextBuffer.Apply(edits)
}

func (f *fakeEditor) String() string { return string(f.Bytes()) }

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	reg, err := template.Default()
	require.NoError(t, err)
	msgs, err := messages.New("en")
	require.NoError(t, err)
	e, err := New(reg, msgs, opts...)
	require.NoError(t, err)
	return e
}

// at returns the offset of the first occurrence of marker in src plus delta.
func at(t *testing.T, src, marker string, delta int) int {
	t.Helper()
	i := strings.Index(src, marker)
	require.GreaterOrEqual(t, i, 0, "marker %q not found", marker)
	return i + delta
}

func span(t *testing.T, src, marker string) types.Selection {
	start := at(t, src, marker, 0)
	return types.Selection{Anchor: start, Head: start + len(marker)}
}

func TestWrapInTryCatch(t *testing.T) {
	tests := []struct {
		name string
		src  string
		sel  func(t *testing.T, src string) types.Selection
		want string
	}{
		{
			name: "selected statements",
			src:  "foo();\nbar();\n",
			sel:  func(t *testing.T, src string) types.Selection { return span(t, src, "foo();\nbar();") },
			want: "try {\nfoo();\nbar();\n} catch (e) {\n    console.log(e.message);\n}\n",
		},
		{
			name: "selection without terminator",
			src:  "foo();\n",
			sel:  func(t *testing.T, src string) types.Selection { return span(t, src, "foo()") },
			want: "try {\nfoo();\n} catch (e) {\n    console.log(e.message);\n}\n",
		},
		{
			name: "loose selection",
			src:  "a();\n  foo();  \nb();",
			sel:  func(t *testing.T, src string) types.Selection { return span(t, src, "\n  foo();  \n") },
			want: "a();\n  try {\nfoo();\n} catch (e) {\n    console.log(e.message);\n}  \nb();",
		},
		{
			name: "statement at cursor",
			src:  "if (x) {\n  foo(1);\n}\n",
			sel:  func(t *testing.T, src string) types.Selection { return types.Cursor(at(t, src, "foo", 1)) },
			want: "if (x) {\n  try {\nfoo(1);\n} catch (e) {\n    console.log(e.message);\n}\n}\n",
		},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(tt.src, tt.sel(t, tt.src))
			res, err := e.WrapInTryCatch(context.Background(), ed)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ed.String())
			assert.Equal(t, 1, ed.applies)
			assert.Empty(t, ed.messages)

			start := strings.Index(tt.want, "try {")
			assert.Equal(t, types.Cursor(start+5), ed.sel)
			assert.Equal(t, ed.sel, res.Selection)
			assert.NotEmpty(t, res.SessionID)
		})
	}
}

func TestWrapKeepsBodyVerbatim(t *testing.T) {
	src := "a();\nif (b) {\n  c(1,\n    2);\n}\nd();\n"
	selections := []string{
		"a();",
		"a();\nif (b) {\n  c(1,\n    2);\n}",
		"c(1,\n    2);",
		"if (b) {\n  c(1,\n    2);\n}\nd();",
	}

	e := newEngine(t)
	for _, sel := range selections {
		ed := newEditor(src, span(t, src, sel))
		s, err := e.NewSession(context.Background(), ed)
		require.NoError(t, err)

		target, err := s.wrapTarget(CommandWrapInTryCatch)
		require.NoError(t, err, sel)
		assert.Equal(t, sel, s.Snapshot().Slice(target))

		_, err = s.WrapInTryCatch()
		require.NoError(t, err)

		out := ed.String()
		body := out[target.Start+len("try {\n"):]
		body = body[:strings.Index(body, "\n} catch (e) {")]
		assert.Equal(t, sel, body)
	}
}

func TestWrapInCondition(t *testing.T) {
	src := "foo();\n"
	ed := newEditor(src, span(t, src, "foo();"))

	_, err := newEngine(t).WrapInCondition(context.Background(), ed)
	require.NoError(t, err)

	assert.Equal(t, "if (x) {\nfoo();\n}\n", ed.String())
	assert.Equal(t, types.Selection{Anchor: 4, Head: 5}, ed.sel)
	assert.Equal(t, "x", ed.String()[ed.sel.Anchor:ed.sel.Head])
}

func TestWrapRejectsPartialSelection(t *testing.T) {
	tests := []struct {
		name string
		src  string
		sel  string
	}{
		{"mid token", "foo();\n", "fo"},
		{"partial expression", "foo(1, 2);\n", "foo(1"},
		{"crosses block", "a();\nif (x) {\n  b();\n}\n", "a();\nif (x) {\n  b();"},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(tt.src, span(t, tt.src, tt.sel))
			_, err := e.WrapInTryCatch(context.Background(), ed)

			require.Error(t, err)
			assert.True(t, IsUserError(err))
			assert.ErrorIs(t, err, ErrInvalidSelection)
			assert.Equal(t, tt.src, ed.String())
			assert.Zero(t, ed.applies)
			assert.Equal(t, []string{"Select valid code to wrap in a Try-Catch block"}, ed.messages)
		})
	}
}

func TestWrapWithoutStatementAtCursor(t *testing.T) {
	src := "a();\n\n\nb();"
	ed := newEditor(src, types.Cursor(5))

	_, err := newEngine(t).WrapInCondition(context.Background(), ed)
	assert.ErrorIs(t, err, ErrNoEnclosingNode)
	assert.Equal(t, []string{"Select valid code to wrap in a Condition block"}, ed.messages)
	assert.Zero(t, ed.applies)
}

func TestConvertToArrowFunction(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		cursor string
		want   string
		// header marks where the cursor ends up in want
		header string
	}{
		{
			name:   "implicit return with many params",
			src:    "var f = function (a, b) { return a + b; };",
			cursor: "return",
			want:   "var f = (a, b) => a + b;",
			header: "a + b;",
		},
		{
			name:   "one param",
			src:    "x.map(function (a) { return a * 2; });",
			cursor: "function",
			want:   "x.map(a => a * 2);",
			header: "a * 2)",
		},
		{
			name:   "no params expression statement",
			src:    "setTimeout(function () { go(); }, 1);",
			cursor: "go",
			want:   "setTimeout(() => go(), 1);",
			header: "go()",
		},
		{
			name:   "object literal result",
			src:    "var f = function () { return {a: 1}; };",
			cursor: "return",
			want:   "var f = () => ({a: 1});",
			header: "({a",
		},
		{
			name:   "async",
			src:    "var f = async function (a) { return await a; };",
			cursor: "await",
			want:   "var f = async a => await a;",
			header: "await a;",
		},
		{
			name:   "cursor on async keyword",
			src:    "var f = async function (a) { return await a; };",
			cursor: "async",
			want:   "var f = async a => await a;",
			header: "await a;",
		},
		{
			name:   "cursor inside function keyword",
			src:    "var f = function (a, b) { return a + b; };",
			cursor: "nction",
			want:   "var f = (a, b) => a + b;",
			header: "a + b;",
		},
		{
			name:   "destructured param",
			src:    "var f = function ({x}) { return x; };",
			cursor: "return",
			want:   "var f = ({x}) => x;",
			header: "x;",
		},
		{
			name:   "many statements keep the block",
			src:    "var f = function (a) {\n  a++;\n  return a;\n};",
			cursor: "a++",
			want:   "var f = a => {\n  a++;\n  return a;\n};",
			header: "{",
		},
		{
			name:   "many statements and params",
			src:    "var f = function (a, b) {\n  a++;\n  return a + b;\n};",
			cursor: "a++",
			want:   "var f = (a, b) => {\n  a++;\n  return a + b;\n};",
			header: "{",
		},
		{
			name:   "single statement without a value",
			src:    "var f = function (a) { if (a) { go(); } };",
			cursor: "go",
			want:   "var f = a => { if (a) { go(); } };",
			header: "{ if",
		},
		{
			name:   "empty body",
			src:    "var f = function () {};",
			cursor: "{",
			want:   "var f = () => {};",
			header: "{}",
		},
		{
			name:   "innermost function",
			src:    "var f = function (a) { return function (b) { return b; }; };",
			cursor: "return b",
			want:   "var f = function (a) { return b => b; };",
			header: "b; }",
		},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(tt.src, types.Cursor(at(t, tt.src, tt.cursor, 0)))
			_, err := e.ConvertToArrowFunction(context.Background(), ed)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ed.String())
			assert.Equal(t, types.Cursor(at(t, tt.want, tt.header, 0)), ed.sel)
			assert.Equal(t, 1, ed.applies)
		})
	}
}

func TestConvertToArrowFunctionRejects(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		cursor string
		want   error
	}{
		{"named function expression", "var f = function named() {};", "named", ErrNamedOrMissingFunction},
		{"generator", "var f = function* () { yield 1; };", "yield", ErrNamedOrMissingFunction},
		{"outside any function", "var f = 1;", "1", ErrNoEnclosingNode},
		{"function declaration", "function g() { return 1; }", "return", ErrNoEnclosingNode},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(tt.src, types.Cursor(at(t, tt.src, tt.cursor, 0)))
			_, err := e.ConvertToArrowFunction(context.Background(), ed)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.src, ed.String())
			assert.Zero(t, ed.applies)
			assert.Equal(t, []string{"Place the cursor inside an anonymous function expression"}, ed.messages)
		})
	}
}

func TestArrowVariantForEveryShape(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"f(function (a) { return a; });", "f(a => a);"},
		{"f(function (a, b) { return a; });", "f((a, b) => a);"},
		{"f(function (a) { a(); a(); });", "f(a => { a(); a(); });"},
		{"f(function (a, b) { a(); b(); });", "f((a, b) => { a(); b(); });"},
	}

	e := newEngine(t)
	for _, tt := range tests {
		ed := newEditor(tt.src, types.Cursor(at(t, tt.src, "function", 0)))
		_, err := e.ConvertToArrowFunction(context.Background(), ed)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ed.String())
	}
}

const getB = "\ngetB: function () {\n    return this.b;\n},\n\nsetB: function (val) {\n    this.b = val;\n}"

func TestCreateGettersAndSetters(t *testing.T) {
	tests := []struct {
		name string
		src  string
		sel  func(t *testing.T, src string) types.Selection
		want string
	}{
		{
			name: "last property gets a separator before the block",
			src:  "var o = {a: 1, b: 2};",
			sel:  func(t *testing.T, src string) types.Selection { return types.Cursor(at(t, src, "b:", 0)) },
			want: "var o = {a: 1, b: 2," + getB + "};",
		},
		{
			name: "cursor right after the key",
			src:  "var o = {a: 1, b: 2};",
			sel:  func(t *testing.T, src string) types.Selection { return types.Cursor(at(t, src, "b:", 1)) },
			want: "var o = {a: 1, b: 2," + getB + "};",
		},
		{
			name: "selected key",
			src:  "var o = {a: 1, b: 2};",
			sel:  func(t *testing.T, src string) types.Selection { return span(t, src, " b") },
			want: "var o = {a: 1, b: 2," + getB + "};",
		},
		{
			name: "property that is not last gets a separator after the block",
			src:  "var o = {a: 1, b: 2};",
			sel:  func(t *testing.T, src string) types.Selection { return types.Cursor(at(t, src, "a:", 0)) },
			want: "var o = {a: 1," +
				"\ngetA: function () {\n    return this.a;\n},\n\nsetA: function (val) {\n    this.a = val;\n}," +
				" b: 2};",
		},
		{
			name: "last property with trailing separator",
			src:  "var o = {\nb: 2,\n};",
			sel:  func(t *testing.T, src string) types.Selection { return types.Cursor(at(t, src, "b:", 0)) },
			want: "var o = {\nb: 2," + getB + "\n};",
		},
		{
			name: "shorthand property",
			src:  "var o = {a, b};",
			sel:  func(t *testing.T, src string) types.Selection { return types.Cursor(at(t, src, "b}", 0)) },
			want: "var o = {a, b," + getB + "};",
		},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(tt.src, tt.sel(t, tt.src))
			_, err := e.CreateGettersAndSetters(context.Background(), ed)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ed.String())
			assert.Equal(t, 1, ed.applies)
			assert.True(t, strings.HasPrefix(ed.String()[ed.sel.Head:], ",") ||
				strings.HasPrefix(ed.String()[ed.sel.Head:], "}") ||
				strings.HasPrefix(ed.String()[ed.sel.Head:], "\n}"))
		})
	}
}

func TestCreateGettersAndSettersIndentsToProperty(t *testing.T) {
	src := "var o = {\n    a: 1,\n    b: 2\n};\n"
	block := func(name, field string) string {
		return "\n    get" + name + ": function () {\n        return this." + field + ";\n    },\n\n" +
			"    set" + name + ": function (val) {\n        this." + field + " = val;\n    }"
	}

	t.Run("last", func(t *testing.T) {
		ed := newEditor(src, types.Cursor(at(t, src, "b:", 0)))
		_, err := newEngine(t).CreateGettersAndSetters(context.Background(), ed)
		require.NoError(t, err)
		assert.Equal(t, "var o = {\n    a: 1,\n    b: 2,"+block("B", "b")+"\n};\n", ed.String())
	})

	t.Run("not last", func(t *testing.T) {
		ed := newEditor(src, types.Cursor(at(t, src, "a:", 0)))
		_, err := newEngine(t).CreateGettersAndSetters(context.Background(), ed)
		require.NoError(t, err)
		assert.Equal(t, "var o = {\n    a: 1,"+block("A", "a")+",\n    b: 2\n};\n", ed.String())
	})

	t.Run("reindent off", func(t *testing.T) {
		ed := newEditor(src, types.Cursor(at(t, src, "b:", 0)))
		_, err := newEngine(t, WithReindent(false)).CreateGettersAndSetters(context.Background(), ed)
		require.NoError(t, err)
		assert.Equal(t, "var o = {\n    a: 1,\n    b: 2,"+getB+"\n};\n", ed.String())
	})
}

func TestCreateGettersAndSettersRejects(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		cursor string
		want   error
	}{
		{"value instead of key", "var o = {a: 1};", "1", ErrNotAProperty},
		{"plain identifier", "var abc = 1;", "abc", ErrNotAProperty},
		{"member expression", "o.b = 1;", "b", ErrNotInPropertyContainer},
		{"method", "var o = {b() { return 1; }};", "b(", ErrNotInPropertyContainer},
	}

	e := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(tt.src, types.Cursor(at(t, tt.src, tt.cursor, 0)))
			_, err := e.CreateGettersAndSetters(context.Background(), ed)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.src, ed.String())
			assert.Zero(t, ed.applies)
			assert.Equal(t, []string{"Place the cursor on a property of an object literal"}, ed.messages)
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "B", capitalize("b"))
	assert.Equal(t, "FooBar", capitalize("fooBar"))
	assert.Equal(t, "Élan", capitalize("élan"))
	assert.Equal(t, "$el", capitalize("$el"))
	assert.Equal(t, "", capitalize(""))
}

func TestSessionCommitsOnce(t *testing.T) {
	src := "foo();\n"
	ed := newEditor(src, span(t, src, "foo();"))

	s, err := newEngine(t).NewSession(context.Background(), ed)
	require.NoError(t, err)

	_, err = s.WrapInTryCatch()
	require.NoError(t, err)
	after := ed.String()

	_, err = s.WrapInTryCatch()
	assert.ErrorIs(t, err, ErrSessionConsumed)
	assert.Equal(t, after, ed.String())
	assert.Equal(t, 1, ed.applies)
}

func TestStaleSessionIsRejected(t *testing.T) {
	src := "foo();\n"
	ed := newEditor(src, span(t, src, "foo();"))

	s, err := newEngine(t).NewSession(context.Background(), ed)
	require.NoError(t, err)

	_, err = ed.TextBuffer.Apply([]types.TextEdit{{Range: types.Range{Start: 0, End: 0}, NewText: "// x\n"}})
	require.NoError(t, err)

	_, err = s.WrapInTryCatch()
	assert.ErrorIs(t, err, edit.ErrStale)
	assert.Equal(t, "// x\nfoo();\n", ed.String())
	assert.Zero(t, ed.applies)
}

func TestNewRequiresEveryTemplate(t *testing.T) {
	reg, err := template.NewRegistry(map[string]template.Definition{
		template.KeyTryCatch: {Params: []string{"body"}, Body: "try {\n{{body}}\n}"},
	})
	require.NoError(t, err)
	msgs, err := messages.New("")
	require.NoError(t, err)

	_, err = New(reg, msgs)
	assert.ErrorIs(t, err, template.ErrUnknownTemplate)
}

func TestLocalizedInlineMessage(t *testing.T) {
	reg, err := template.Default()
	require.NoError(t, err)
	msgs, err := messages.New("fr")
	require.NoError(t, err)
	e, err := New(reg, msgs)
	require.NoError(t, err)

	ed := newEditor("var f = 1;", types.Cursor(0))
	_, err = e.ConvertToArrowFunction(context.Background(), ed)
	require.Error(t, err)
	assert.Equal(t, []string{"Placez le curseur dans une expression de fonction anonyme"}, ed.messages)
}

func TestLookup(t *testing.T) {
	c, ok := Lookup(CommandConvertToArrowFunction)
	require.True(t, ok)
	assert.Equal(t, messages.CmdArrowFunction, c.Title)

	_, ok = Lookup("refactoring.nope")
	assert.False(t, ok)

	assert.Equal(t, "Create Getters/Setters", newEngine(t).Title(Commands[3]))
}
