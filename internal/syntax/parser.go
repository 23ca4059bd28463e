package syntax

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fortio.org/safecast"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/internal/syntax/lang"
	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoLanguage is returned when Parse is called without a language.
var ErrNoLanguage = errors.New("syntax: no language provided")

// Parser turns buffer text into an immutable Node tree.
type Parser struct {
	mu     sync.Mutex // sitter.Parser is not safe for concurrent use
	parser *sitter.Parser
}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// Parse parses src with language l and captures it, together with the
// document version it was read at, as a Snapshot.
// NOTE: This is NON-INCREMENTAL. Every session parses the whole buffer.
func (p *Parser) Parse(ctx context.Context, l *lang.Language, src []byte, version uint64) (*Snapshot, error) {
	if l == nil || l.TreeSitterLang == nil {
		return nil, ErrNoLanguage
	}

	text := make([]byte, len(src))
	copy(text, src)

	p.mu.Lock()
	p.parser.SetLanguage(l.TreeSitterLang)
	tree, err := p.parser.ParseCtx(ctx, nil, text)
	p.mu.Unlock()
	if err != nil {
		logger.Errorf("Tree-sitter parsing error: %v", err)
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close() // The Node tree copies everything it needs

	sitterRoot := tree.RootNode()
	root, err := convert(sitterRoot, nil, "")
	if err != nil {
		return nil, fmt.Errorf("converting syntax tree: %w", err)
	}

	logger.DebugTagf("syntax", "Parsed %d bytes as %s (errors=%v)", len(text), l.Name, sitterRoot.HasError())
	return &Snapshot{
		Text:      text,
		Root:      root,
		Version:   version,
		Language:  l,
		HasErrors: sitterRoot.HasError(),
	}, nil
}

// convert copies a tree-sitter node and its subtree into Node values.
// Zero-width MISSING nodes inserted by error recovery are dropped.
func convert(sn *sitter.Node, parent *Node, field string) (*Node, error) {
	start, err := safecast.Conv[int](sn.StartByte())
	if err != nil {
		return nil, err
	}
	end, err := safecast.Conv[int](sn.EndByte())
	if err != nil {
		return nil, err
	}

	n := &Node{
		Kind:   Kind(sn.Type()),
		Field:  field,
		Named:  sn.IsNamed(),
		Start:  start,
		End:    end,
		Parent: parent,
	}

	count := int(sn.ChildCount())
	if count > 0 {
		n.Children = make([]*Node, 0, count)
	}
	for i := 0; i < count; i++ {
		child := sn.Child(i)
		if child == nil || child.IsMissing() {
			continue
		}
		c, err := convert(child, n, sn.FieldNameForChild(i))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}
