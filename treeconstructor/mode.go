package treeconstructor

// InsertionMode names one of the standard's 23 tree construction
// insertion modes.
type InsertionMode uint8

const (
	InitialMode InsertionMode = iota
	BeforeHTMLMode
	BeforeHeadMode
	InHeadMode
	InHeadNoScriptMode
	AfterHeadMode
	InBodyMode
	TextMode
	InTableMode
	InTableTextMode
	InCaptionMode
	InColumnGroupMode
	InTableBodyMode
	InRowMode
	InCellMode
	InSelectMode
	InSelectInTableMode
	InTemplateMode
	AfterBodyMode
	InFramesetMode
	AfterFramesetMode
	AfterAfterBodyMode
	AfterAfterFramesetMode
)

func (m InsertionMode) String() string {
	switch m {
	case InitialMode:
		return "initial"
	case BeforeHTMLMode:
		return "before html"
	case BeforeHeadMode:
		return "before head"
	case InHeadMode:
		return "in head"
	case InHeadNoScriptMode:
		return "in head noscript"
	case AfterHeadMode:
		return "after head"
	case InBodyMode:
		return "in body"
	case TextMode:
		return "text"
	case InTableMode:
		return "in table"
	case InTableTextMode:
		return "in table text"
	case InCaptionMode:
		return "in caption"
	case InColumnGroupMode:
		return "in column group"
	case InTableBodyMode:
		return "in table body"
	case InRowMode:
		return "in row"
	case InCellMode:
		return "in cell"
	case InSelectMode:
		return "in select"
	case InSelectInTableMode:
		return "in select in table"
	case InTemplateMode:
		return "in template"
	case AfterBodyMode:
		return "after body"
	case InFramesetMode:
		return "in frameset"
	case AfterFramesetMode:
		return "after frameset"
	case AfterAfterBodyMode:
		return "after after body"
	case AfterAfterFramesetMode:
		return "after after frameset"
	}
	return "unknown"
}
