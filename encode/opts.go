package encode

type EncodeOption func(*EncState)

// Indent enables pretty printing with n spaces per level. Zero keeps the
// default compact output.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}
