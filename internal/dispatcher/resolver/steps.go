package resolver

// Buffer-layer commands produced by the built-in catalog.
const (
	StepMoveChars     = "_vi_move_chars"
	StepMoveLines     = "_vi_move_lines"
	StepMoveWords     = "_vi_move_words"
	StepLineStart     = "_vi_line_start"
	StepLineEnd       = "_vi_line_end"
	StepFirstNonBlank = "_vi_first_non_blank"
	StepGotoLine      = "_vi_goto_line"
	StepFindChar      = "_vi_find_char"
	StepSearch        = "_vi_search"
	StepGotoMark      = "_vi_goto_mark"
	StepReverseCaret  = "_vi_reverse_caret"

	StepDelete         = "_vi_delete"
	StepYank           = "_vi_yank"
	StepChange         = "_vi_change"
	StepShift          = "_vi_shift"
	StepChangeCase     = "_vi_change_case"
	StepSelectLines    = "_vi_select_lines"
	StepDeleteChar     = "_vi_delete_char"
	StepPaste          = "_vi_paste"
	StepEnterInsert    = "_vi_enter_insert"
	StepEnterReplace   = "_vi_enter_replace"
	StepVisual         = "_vi_visual"
	StepReplaceChar    = "_vi_replace_char"
	StepSetMark        = "_vi_set_mark"
	StepUndo           = "_vi_undo"
	StepRedo           = "_vi_redo"
	StepRepeat         = "_vi_repeat"
	StepEsc            = "_vi_esc"
	StepInsertRegister = "_vi_insert_register"
)

// Argument keys shared by steps.
const (
	ArgCount     = "count"
	ArgDelta     = "delta"
	ArgBackward  = "backward"
	ArgEnd       = "end"
	ArgInclusive = "inclusive"
	ArgLinewise  = "linewise"
	ArgLine      = "line"
	ArgChar      = "char"
	ArgTill      = "till"
	ArgPattern   = "pattern"
	ArgMark      = "mark"
	ArgRegister  = "register"
	ArgWhere     = "where"
	ArgUpper     = "upper"
	ArgThen      = "then"
)

// Insert positions for StepEnterInsert.
const (
	InsertBefore    = "before"
	InsertAfter     = "after"
	InsertLineStart = "line_start"
	InsertLineEnd   = "line_end"
	InsertBelow     = "below"
	InsertAbove     = "above"
)
