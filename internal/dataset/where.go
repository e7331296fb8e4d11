package dataset

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// AST for size predicates such as "height <= 500 AND width <= 400".

type whereExpr struct {
	Terms []*whereTerm `parser:"@@ ( ('AND' | '&&') @@ )*"`
}

type whereTerm struct {
	Column string `parser:"@Ident"`
	Op     string `parser:"@Operator"`
	Limit  int    `parser:"@Number"`
}

var (
	whereLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?i)\bAND\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "Operator", Pattern: `<=|>=|!=|==|[=<>]`},
		{Name: "Punct", Pattern: `&&`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	whereParser = participle.MustBuild[whereExpr](
		participle.Lexer(whereLexer),
		participle.CaseInsensitive("Keyword"),
		participle.Elide("Whitespace"),
	)
)

// ParseWhere parses a conjunction of "<=" limits on height and width into
// Bounds, e.g. "height <= 500 and width <= 400". A dimension that is not
// mentioned stays unbounded; a dimension mentioned twice keeps the tighter
// limit.
func ParseWhere(expr string) (Bounds, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Bounds{}, fmt.Errorf("empty where expression")
	}

	ast, err := whereParser.ParseString("", expr)
	if err != nil {
		return Bounds{}, fmt.Errorf("invalid where expression %q: %w", expr, err)
	}

	var b Bounds
	for _, term := range ast.Terms {
		if term.Op != "<=" {
			return Bounds{}, fmt.Errorf("invalid where expression %q: operator %q not supported, use <=", expr, term.Op)
		}
		switch strings.ToLower(term.Column) {
		case ColumnHeight:
			b.MaxHeight = tighter(b.MaxHeight, term.Limit)
		case ColumnWidth:
			b.MaxWidth = tighter(b.MaxWidth, term.Limit)
		default:
			return Bounds{}, fmt.Errorf("invalid where expression %q: unknown column %q (use height or width)", expr, term.Column)
		}
	}
	return b, nil
}

func tighter(cur Int, limit int) Int {
	if cur.Valid && cur.Value <= limit {
		return cur
	}
	return IntOf(limit)
}
