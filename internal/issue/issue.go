// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"

	renderpkg "github.com/reqline/reqline/internal/render"
	"github.com/reqline/reqline/pkg/cmdline"
)

const (
	MalformedInputId Id = iota + 1
	MalformedOptionId
	UnknownFormatId
	UnrepresentableOptionId
	ConfigLoadFailedId
	ServerStartFailedId
)

const docsBase = "https://github.com/reqline/reqline/blob/main/docs/"

type Id int

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty
	extLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue page with the given glamour style ("dark", "light", "auto", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	malformedInputIssue = &Issue{
		id: MalformedInputId,
		mdMsg: `
# Unclosed quote in request line

The line ended while a single- or double-quoted region was still open.

## Things you can try
- Add the missing closing quote:
~~~
deploy --message="ship it"
~~~
- A quote of the other kind inside a quoted region is literal text:
~~~
say "it's fine"
say 'he said "hi"'
~~~`,
		docLinks: []HttpLink{docsBase + "syntax.md#quoting"},
	}

	malformedOptionIssue = &Issue{
		id: MalformedOptionId,
		mdMsg: `
# Long option without a value

A ` + "`--name`" + ` option takes its value after ` + "`=`" + ` or from the next word, and
nothing followed it.

## Things you can try
- Give the value inline:
~~~
build --target=linux
~~~
- Or as the next word:
~~~
build --target linux
~~~
- For an on/off switch use a short option instead: ` + "`-v`",
		docLinks: []HttpLink{docsBase + "syntax.md#options"},
	}

	unknownFormatIssue = &Issue{
		id: UnknownFormatId,
		mdMsg: `
# Unknown output format

Supported formats are **text**, **json**, **toml**, **shell** and **events**.

## Things you can try
~~~
reqline parse --format json -- deploy --env=prod
~~~
- Or set a default in your config file:
~~~cue
output: format: "json"
~~~`,
		docLinks: []HttpLink{docsBase + "output.md"},
	}

	unrepresentableOptionIssue = &Issue{
		id: UnrepresentableOptionId,
		mdMsg: `
# Option has no command-line form

Only single-character options can appear without a value, as members of a short option
cluster such as ` + "`-abc`" + `. A longer option name needs a value.

## Things you can try
- Render with a structured format instead:
~~~
reqline parse --format json ...
~~~`,
		docLinks: []HttpLink{docsBase + "output.md#shell"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The config file could not be read or does not match the schema.

## Things you can try
- Show the effective configuration and where it was loaded from:
~~~
reqline config show
reqline config path
~~~
- Write a fresh default file:
~~~
reqline config init
~~~`,
		docLinks: []HttpLink{docsBase + "configuration.md"},
	}

	serverStartFailedIssue = &Issue{
		id: ServerStartFailedId,
		mdMsg: `
# Console server failed to start

The SSH console could not bind its address or load its host key.

## Things you can try
- Pick another port:
~~~
reqline serve --port 2324
~~~
- Check that the host key path is readable, or leave it empty to generate one.`,
		docLinks: []HttpLink{docsBase + "server.md"},
		extLinks: []HttpLink{"https://github.com/charmbracelet/wish"},
	}

	issues = map[Id]*Issue{
		malformedInputIssue.Id():        malformedInputIssue,
		malformedOptionIssue.Id():       malformedOptionIssue,
		unknownFormatIssue.Id():         unknownFormatIssue,
		unrepresentableOptionIssue.Id(): unrepresentableOptionIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		serverStartFailedIssue.Id():     serverStartFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	ids := maps.Keys(issues)
	slices.Sort(ids)
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// IdFor maps an error to its catalog entry id, or 0 when there is none.
func IdFor(err error) Id {
	var ae *ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, cmdline.ErrMalformedInput):
		return MalformedInputId
	case errors.Is(err, cmdline.ErrMalformedOption):
		return MalformedOptionId
	case errors.Is(err, renderpkg.ErrUnknownFormat):
		return UnknownFormatId
	case errors.Is(err, renderpkg.ErrUnrepresentableOption):
		return UnrepresentableOptionId
	default:
		return 0
	}
}

// ParseError wraps a parse failure of line with suggestions matching its cause.
func ParseError(line string, err error) error {
	if err == nil {
		return nil
	}
	return NewErrorContext().
		WithOperation("parse request line").
		WrapParse(line, err).
		BuildError()
}

// ForError returns the catalog entry explaining err, or nil.
func ForError(err error) *Issue {
	return Get(IdFor(err))
}
