package record

// Field describes one form input.
type Field struct {
	Column string
	Label  string
}

// Section groups related inputs under a heading.
type Section struct {
	Title  string
	Icon   string
	Fields []Field
}

var sections = []Section{
	{
		Title: "Performance Metrics",
		Icon:  "🏁",
		Fields: []Field{
			{Column: Points, Label: "Points"},
			{Column: Laps, Label: "Laps Completed"},
			{Column: Grid, Label: "Grid Position"},
		},
	},
	{
		Title: "Driver Statistics",
		Icon:  "👤",
		Fields: []Field{
			{Column: DriverAvgPoints, Label: "Driver Average Points"},
			{Column: DriverMedianGrid, Label: "Driver Median Grid Position"},
		},
	},
	{
		Title: "Constructor Data",
		Icon:  "🏭",
		Fields: []Field{
			{Column: ConstructorAvgPoints, Label: "Constructor Average Points"},
			{Column: ConstructorMedianGrid, Label: "Constructor Median Grid Position"},
			{Column: ConstructorRefEnc, Label: "Constructor ID (encoded)"},
		},
	},
	{
		Title: "Circuit Information",
		Icon:  "🏟️",
		Fields: []Field{
			{Column: CircuitRefEnc, Label: "Circuit ID (encoded)"},
		},
	},
}

// Sections returns the form layout. The returned slice is a copy.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		s.Fields = append([]Field(nil), s.Fields...)
		out[i] = s
	}
	return out
}

// Fields returns every field in model column order.
func Fields() []Field {
	var out []Field
	for _, s := range sections {
		out = append(out, s.Fields...)
	}
	return out
}

// ColumnNames returns the model column names in order.
func ColumnNames() []string {
	fields := Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Column
	}
	return out
}

// IsColumn reports whether name is one of the nine model columns.
func IsColumn(name string) bool {
	_, ok := Record{}.Value(name)
	return ok
}
