package model

// Calculation is a quotation for a customer. Its items are organized in
// groups and categories.
type Calculation struct {
	ID          int     `json:"id"`
	Customer    string  `json:"customer"`
	Description string  `json:"description"`
	State       string  `json:"state"`
	Date        Date    `json:"date"`
	UserMargin  float64 `json:"user_margin"`
	Items       []Item  `json:"items,omitempty"`
}

// Item is a line of a calculation.
type Item struct {
	Group       string  `json:"group"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
}

// Total returns price times quantity.
func (i Item) Total() float64 {
	return i.Price * i.Quantity
}

// IsEmpty reports whether the calculation has no item.
func (c *Calculation) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemsTotal returns the sum of the item totals.
func (c *Calculation) ItemsTotal() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Total()
	}
	return total
}

// Section is the items of one group, by category.
type Section struct {
	Group      string
	Categories []CategorySection
}

// CategorySection is the items of one category.
type CategorySection struct {
	Category string
	Items    []Item
}

// Amount returns the sum of the category items.
func (s CategorySection) Amount() float64 {
	total := 0.0
	for _, item := range s.Items {
		total += item.Total()
	}
	return total
}

// Amount returns the sum of the group items.
func (s Section) Amount() float64 {
	total := 0.0
	for _, c := range s.Categories {
		total += c.Amount()
	}
	return total
}

// Sections returns the items by group and category, in order of first
// appearance.
func (c *Calculation) Sections() []Section {
	var sections []Section
	groupIndex := map[string]int{}
	categoryIndex := map[[2]string]int{}
	for _, item := range c.Items {
		gi, ok := groupIndex[item.Group]
		if !ok {
			gi = len(sections)
			groupIndex[item.Group] = gi
			sections = append(sections, Section{Group: item.Group})
		}
		key := [2]string{item.Group, item.Category}
		ci, ok := categoryIndex[key]
		if !ok {
			ci = len(sections[gi].Categories)
			categoryIndex[key] = ci
			sections[gi].Categories = append(sections[gi].Categories, CategorySection{Category: item.Category})
		}
		cat := &sections[gi].Categories[ci]
		cat.Items = append(cat.Items, item)
	}
	return sections
}

// GroupTotal is the amount of a group with its margin.
type GroupTotal struct {
	Group  string
	Amount float64
	Margin float64
}

// MarginAmount returns the amount added by the margin.
func (g GroupTotal) MarginAmount() float64 {
	return g.Amount * g.Margin
}

// Total returns the amount with the margin.
func (g GroupTotal) Total() float64 {
	return g.Amount * (1 + g.Margin)
}

// Totals are the computed totals of a calculation.
type Totals struct {
	Items        float64
	Groups       []GroupTotal
	GlobalMargin float64
	UserMargin   float64
}

// GroupsTotal returns the sum of the group totals.
func (t Totals) GroupsTotal() float64 {
	total := 0.0
	for _, g := range t.Groups {
		total += g.Total()
	}
	return total
}

// GlobalAmount returns the amount added by the global margin.
func (t Totals) GlobalAmount() float64 {
	return t.GroupsTotal() * t.GlobalMargin
}

// UserAmount returns the amount added by the user margin.
func (t Totals) UserAmount() float64 {
	return t.GroupsTotal() * (1 + t.GlobalMargin) * t.UserMargin
}

// Overall returns the total with all the margins.
func (t Totals) Overall() float64 {
	return t.GroupsTotal() * (1 + t.GlobalMargin) * (1 + t.UserMargin)
}

// OverallMargin returns the overall rate over the items total, or 0 when
// there are no items.
func (t Totals) OverallMargin() float64 {
	if t.Items == 0 {
		return 0
	}
	return t.Overall()/t.Items - 1
}

// IsBelow reports whether the overall margin is below minimum.
func (t Totals) IsBelow(minimum float64) bool {
	return t.Items != 0 && t.OverallMargin() < minimum
}
