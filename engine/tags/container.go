package tags

import (
	"github.com/npillmayer/karafx/engine/karaoke"
)

// Container collects tag values by tag name. A tag name may have more than
// one value; for every line, the last value which is not nil wins.
//
// Tags render in the order their names were first added, unless Reorder
// fixed an explicit order.
type Container struct {
	values    map[string][]Value
	order     []string
	reordered bool
}

// NewContainer creates an empty tag container.
func NewContainer() *Container {
	return &Container{values: make(map[string][]Value)}
}

// Add appends values for the tag called name.
func (c *Container) Add(name string, values ...Value) *Container {
	if _, known := c.values[name]; !known && !c.reordered {
		c.order = append(c.order, name)
	}
	c.values[name] = append(c.values[name], values...)
	return c
}

// Reorder fixes the order of tags. Tags not named are not rendered.
func (c *Container) Reorder(names ...string) *Container {
	c.order = append([]string(nil), names...)
	c.reordered = true
	return c
}

// Order returns the names of tags in render order.
func (c *Container) Order() []string {
	return append([]string(nil), c.order...)
}

// HasPerFrame is true if any value in c is a per-frame value.
func (c *Container) HasPerFrame() bool {
	for _, vs := range c.values {
		for _, v := range vs {
			if v.kind == KindPerFrame {
				return true
			}
		}
	}
	return false
}

// Tags evaluates all tags for line.
func (c *Container) Tags(line *karaoke.Line, f4f bool) ([]Tag, error) {
	var tags []Tag
	for _, name := range c.order {
		var value interface{}
		for _, v := range c.values[name] {
			x, err := v.Eval(line, f4f)
			if err != nil {
				return nil, err
			}
			if x != nil {
				value = x
			}
		}
		if value != nil {
			tags = append(tags, Tag{Name: name, Value: value})
		}
	}
	return tags, nil
}

// Generate renders the tag block for line in front of text.
func (c *Container) Generate(line *karaoke.Line, text string, f4f bool) (string, error) {
	tags, err := c.Tags(line, f4f)
	if err != nil {
		return "", err
	}
	return Block(tags, text), nil
}
