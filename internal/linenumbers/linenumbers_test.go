package linenumbers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shopSource = strings.Join([]string{
	"module Shop",
	"  class Cart",
	"    def add(item)",
	"      items << item",
	"    end",
	"",
	"    def self.build",
	"      new",
	"    end",
	"",
	"    class << self",
	"      def empty",
	"        build",
	"      end",
	"    end",
	"  end",
	"end",
	"",
	"class Shop::Order",
	"  def total; 0; end",
	"end",
	"",
	"def helper",
	"end",
}, "\n")

// parseRuby 是测试辅助函数，解析失败直接终止测试。
func parseRuby(t *testing.T, source string) *LineNumbers {
	t.Helper()

	lines, err := (&RubyParser{}).Parse(context.Background(), "shop.rb", []byte(source))
	require.NoError(t, err)
	return lines
}

func TestRubyStartLineForMethod(t *testing.T) {
	lines := parseRuby(t, shopSource)

	cases := map[string]int{
		"Shop":                  1,
		"Shop::Cart":            2,
		"Shop::Cart#add":        3,
		"Shop::Cart::build":     7,
		"Shop::Cart.build":      7,
		"Shop::Cart#self.build": 7,
		"Shop::Cart::empty":     12,
		"Shop::Order":           19,
		"Shop::Order#total":     20,
		"helper":                23,
		"#helper":               23,
	}

	for method, want := range cases {
		got, ok := lines.StartLineForMethod(method)
		if assert.Truef(t, ok, "method %s should resolve", method) {
			assert.Equalf(t, want, got, "start line of %s", method)
		}
	}

	_, ok := lines.StartLineForMethod("Shop::Cart#missing")
	assert.False(t, ok)
	assert.Equal(t, "shop.rb", lines.Path())
}

func TestRubySpanForMethod(t *testing.T) {
	lines := parseRuby(t, shopSource)

	span, ok := lines.SpanForMethod("Shop::Cart#add")
	require.True(t, ok)
	assert.Equal(t, Span{Start: 3, End: 5}, span)
}

func TestRubyMethodAtLine(t *testing.T) {
	lines := parseRuby(t, shopSource)

	method, ok := lines.MethodAtLine(4)
	require.True(t, ok)
	assert.Equal(t, "Shop::Cart#add", method)

	method, ok = lines.MethodAtLine(13)
	require.True(t, ok)
	assert.Equal(t, "Shop::Cart::empty", method)

	assert.True(t, lines.InMethod(8))
	assert.False(t, lines.InMethod(6))
	assert.False(t, lines.InMethod(18))
}

func TestRubyRedefinitionLastWins(t *testing.T) {
	source := strings.Join([]string{
		"class Foo",
		"  def bar",
		"  end",
		"  def bar",
		"  end",
		"end",
	}, "\n")

	line, ok := parseRuby(t, source).StartLineForMethod("Foo#bar")
	require.True(t, ok)
	assert.Equal(t, 4, line)
}

func TestRubyMethodsListing(t *testing.T) {
	source := "class Foo\n  def bar\n  end\nend\n"

	want := []string{"Foo", "Foo#bar"}
	if diff := cmp.Diff(want, parseRuby(t, source).Methods()); diff != "" {
		t.Fatalf("methods mismatch (-want +got):\n%s", diff)
	}
}

func TestRubySyntaxErrorIsUnparsable(t *testing.T) {
	source := "class Foo\n  def bar(\n    ))) }}}\n"

	_, err := (&RubyParser{}).Parse(context.Background(), "broken.rb", []byte(source))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnparsableSource))
	assert.Contains(t, err.Error(), "broken.rb")
}

func TestRubyEmptySource(t *testing.T) {
	lines := parseRuby(t, "")
	assert.Empty(t, lines.Methods())
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	for _, path := range []string{"app/views/a.html.erb", "b.haml", "c.HTML"} {
		assert.Truef(t, registry.Skipped(path), "%s should be skipped", path)
		_, ok := registry.ParserForFile(path)
		assert.Falsef(t, ok, "%s should have no parser", path)
	}

	for _, path := range []string{"lib/a.rb", "Rakefile.rake", "x.gemspec", "config.ru"} {
		parser, ok := registry.ParserForFile(path)
		require.Truef(t, ok, "%s should have a parser", path)
		assert.Equal(t, "Ruby", parser.Name())
	}

	parser, ok := registry.ParserForFile("Gemfile")
	require.True(t, ok, "unknown extensions fall back to Ruby")
	assert.Equal(t, "Ruby", parser.Name())

	assert.Contains(t, registry.Extensions(), ".rb")
}

func TestRegistryWithoutFallback(t *testing.T) {
	registry := NewRegistryWith(nil, &RubyParser{})

	_, ok := registry.ParserForFile("notes.txt")
	assert.False(t, ok)
}
