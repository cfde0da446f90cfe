package commands

// ClearCmd implements the 'clear' command.
type ClearCmd struct{}

func (cc *ClearCmd) Run(_ *Global, root *CLI) error {
	c, _, err := NewCompiler(root)
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}
