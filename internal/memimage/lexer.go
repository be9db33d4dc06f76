package memimage

import "github.com/alecthomas/participle/v2/lexer"

// imageLexer tokenizes a memory image. A run-length word `n-h` is tried
// before a plain hex word so that the count is never read as data.
var imageLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "RunLength", Pattern: `[0-9]+-[0-9a-fA-F]+`},
	{Name: "Word", Pattern: `[0-9a-fA-F]+`},
	{Name: "Whitespace", Pattern: `[\s,]+`},
})
