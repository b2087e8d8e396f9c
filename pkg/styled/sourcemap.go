package styled

// SourceRun is a maximal span of display characters annotated with the
// same source position.
type SourceRun struct {
	DisplayStart int
	DisplayEnd   int
	SourcePos    int
}

func (r SourceRun) Len() int {
	return r.DisplayEnd - r.DisplayStart
}

// SourceMap translates offsets between the source text of a node and the
// display text produced by rendering it. Runs are ordered by display
// offset and, because rendering preserves document order, by source
// position as well.
type SourceMap struct {
	runs       []SourceRun
	displayLen int
	sourceLen  int
}

// NewSourceMap builds a map from the source annotations of s. sourceLen is
// the length of the source text in runes and bounds every result.
func NewSourceMap(s *String, sourceLen int) *SourceMap {
	m := &SourceMap{sourceLen: sourceLen}
	if s == nil {
		return m
	}

	pos := 0
	for _, r := range s.runs {
		n := r.Len()
		if r.Attrs.HasSourcePos {
			last := len(m.runs) - 1
			if last >= 0 && m.runs[last].DisplayEnd == pos && m.runs[last].SourcePos == r.Attrs.SourcePos {
				m.runs[last].DisplayEnd += n
			} else {
				m.runs = append(m.runs, SourceRun{DisplayStart: pos, DisplayEnd: pos + n, SourcePos: r.Attrs.SourcePos})
			}
		}
		pos += n
	}
	m.displayLen = pos
	return m
}

func (m *SourceMap) Runs() []SourceRun {
	return m.runs
}

func (m *SourceMap) DisplayLen() int {
	return m.displayLen
}

func (m *SourceMap) SourceLen() int {
	return m.sourceLen
}

// SourceIndexFor returns the source offset of the display offset
// displayIndex. Characters outside any run resolve through the nearest
// prior run, or to 0 when there is none.
func (m *SourceMap) SourceIndexFor(displayIndex int) int {
	if len(m.runs) == 0 {
		return clamp(displayIndex, 0, m.sourceLen)
	}

	var run *SourceRun
	for i := range m.runs {
		r := &m.runs[i]
		if r.DisplayStart > displayIndex {
			break
		}
		run = r
		if displayIndex < r.DisplayEnd {
			break
		}
	}
	if run == nil {
		return 0
	}
	return clamp(displayIndex-run.DisplayStart+run.SourcePos, 0, m.sourceLen)
}

// DisplayIndexFor returns the display offset of the source offset
// sourceIndex. The result never leaves the run sourceIndex resolves to.
func (m *SourceMap) DisplayIndexFor(sourceIndex int) int {
	if len(m.runs) == 0 {
		return clamp(sourceIndex, 0, m.displayLen)
	}

	var run *SourceRun
	for i := range m.runs {
		r := &m.runs[i]
		if r.SourcePos <= sourceIndex {
			run = r
		}
		if r.SourcePos >= sourceIndex {
			break
		}
	}
	if run == nil {
		return clamp(m.runs[0].DisplayStart, 0, m.displayLen)
	}
	// Source characters hidden after the end of a run collapse onto its end.
	return clamp(run.DisplayStart+(sourceIndex-run.SourcePos), run.DisplayStart, run.DisplayEnd)
}

// RunAtSource returns the run that contains the source offset
// sourceIndex, as used by DisplayIndexFor.
func (m *SourceMap) RunAtSource(sourceIndex int) (SourceRun, bool) {
	var (
		run   SourceRun
		found bool
	)
	for _, r := range m.runs {
		if r.SourcePos <= sourceIndex {
			run, found = r, true
		}
		if r.SourcePos >= sourceIndex {
			break
		}
	}
	return run, found
}
