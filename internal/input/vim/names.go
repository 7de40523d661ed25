package vim

// Name identifies a motion or action in the resolver registry.
type Name string

// Built-in actions.
const (
	ActionDelete          Name = "vi_d"
	ActionChange          Name = "vi_c"
	ActionYank            Name = "vi_y"
	ActionDeleteLine      Name = "vi_dd"
	ActionChangeLine      Name = "vi_cc"
	ActionYankLine        Name = "vi_yy"
	ActionIndent          Name = "vi_greater_than"
	ActionIndentLine      Name = "vi_greater_than_greater_than"
	ActionUnindent        Name = "vi_less_than"
	ActionUnindentLine    Name = "vi_less_than_less_than"
	ActionGPrefix         Name = "vi_g_action"
	ActionUppercase       Name = "vi_g_big_u"
	ActionUppercaseLine   Name = "vi_g_big_u_big_u"
	ActionLowercase       Name = "vi_g_u"
	ActionLowercaseLine   Name = "vi_g_u_u"
	ActionDeleteChar      Name = "vi_x"
	ActionPasteAfter      Name = "vi_p"
	ActionPasteBefore     Name = "vi_big_p"
	ActionInsert          Name = "vi_i"
	ActionAppend          Name = "vi_a"
	ActionInsertLineStart Name = "vi_big_i"
	ActionAppendLineEnd   Name = "vi_big_a"
	ActionOpenBelow       Name = "vi_o"
	ActionOpenAbove       Name = "vi_big_o"
	ActionVisual          Name = "vi_v"
	ActionVisualLine      Name = "vi_big_v"
	ActionReplaceChar     Name = "vi_r"
	ActionReplaceMode     Name = "vi_big_r"
	ActionSetMark         Name = "vi_m"
	ActionUndo            Name = "vi_u"
	ActionRedo            Name = "vi_ctrl_r"
	ActionRepeat          Name = "vi_dot"
	ActionEsc             Name = "vi_esc"
	ActionInsertRegister  Name = "vi_ctrl_r_action"
)

// Built-in motions.
const (
	MotionLeft             Name = "vi_h"
	MotionDown             Name = "vi_j"
	MotionUp               Name = "vi_k"
	MotionRight            Name = "vi_l"
	MotionWordForward      Name = "vi_w"
	MotionWordBackward     Name = "vi_b"
	MotionWordEnd          Name = "vi_e"
	MotionLineStart        Name = "vi_zero"
	MotionLineEnd          Name = "vi_dollar"
	MotionFirstNonBlank    Name = "vi_hat"
	MotionGotoLine         Name = "vi_big_g"
	MotionGotoFirstLine    Name = "vi_gg"
	MotionGPrefix          Name = "vi_g_motion"
	MotionFindChar         Name = "vi_f"
	MotionFindCharBackward Name = "vi_big_f"
	MotionTillChar         Name = "vi_t"
	MotionTillCharBackward Name = "vi_big_t"
	MotionRepeatCharSearch Name = "vi_semicolon"
	MotionSearch           Name = "vi_slash"
	MotionSearchNext       Name = "vi_n"
	MotionGotoMark         Name = "vi_quote"
	MotionReverseCaret     Name = "vi_reverse_caret"
)
