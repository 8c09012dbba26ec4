package report

// Document is the root of a parsed condition report.
type Document struct {
	Title    string     // Report title (from metadata or filename)
	Sections []*Section // Top-level sections in reading order
}

// Section is a recursive structural unit of the report.
type Section struct {
	Heading  string     // Section heading as printed (e.g. "4.2 Taktekking")
	Text     string     // Body text of this section (may be empty for containers)
	Page     int        // Source page (0 if N/A)
	Children []*Section // Subsections
}

// Walk visits every section depth-first in reading order.
func (d *Document) Walk(fn func(s *Section, depth int)) {
	var walk func(nodes []*Section, depth int)
	walk = func(nodes []*Section, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(d.Sections, 1)
}
