package form

// Field names of the weekly Berichtsheft.
const (
	WeekNo          = "week_no"
	Name            = "name"
	Beruf           = "beruf"
	AusbildungJahr  = "ausbildung_jahr"
	Abteilung       = "abteilung"
	StartDate       = "start_date"
	EndDate         = "end_date"
	Texts1          = "texts_1"
	Hour1           = "hour_1"
	Texts2          = "texts_2"
	Hour2           = "hour_2"
	Texts3          = "texts_3"
	Hour3           = "hour_3"
	DateOfSign      = "date_of_sign"
	DateOfSign2     = "date_of_sign_2"
	OutputDirectory = "output_directory"
)

// activityWrapWidth is the printable width of the activity boxes in points.
const activityWrapWidth = 475

// Field describes one slot of the form. X and Y are measured in points from
// the top-left corner of the template page.
type Field struct {
	Name      string
	Label     string
	X, Y      float64
	Default   string
	WrapWidth float64
	Multiline bool
	// Computed fields are derived from other fields before generation.
	Computed bool
	// Settings are persisted but never printed.
	Setting bool
}

// Schema lists the fields of the weekly Berichtsheft template in the order
// they are presented for editing.
var Schema = []Field{
	{Name: OutputDirectory, Label: "Output Directory", Setting: true},
	{Name: Name, Label: "Name", X: 211, Y: 70},
	{Name: Beruf, Label: "Profession", X: 170, Y: 96, Default: "Fachinformatiker - Anwendungsentwicklung"},
	{Name: Abteilung, Label: "Department", X: 470, Y: 121, Default: "IT-Abteilung"},
	{Name: WeekNo, Label: "Week Number", X: 505, Y: 44},
	{Name: AusbildungJahr, Label: "Training Year", X: 528, Y: 96},
	{Name: StartDate, Label: "Start Date", X: 171, Y: 121},
	{Name: EndDate, Label: "End Date", X: 257, Y: 121},
	{Name: Texts1, Label: "Work", X: 50, Y: 176, WrapWidth: activityWrapWidth, Multiline: true},
	{Name: Hour1, Label: "Hours 1", X: 502, Y: 176},
	{Name: Texts2, Label: "Unterweisungen", X: 50, Y: 352, WrapWidth: activityWrapWidth, Multiline: true},
	{Name: Hour2, Label: "Hours 2", X: 502, Y: 352},
	{Name: Texts3, Label: "School activities", X: 50, Y: 525, WrapWidth: activityWrapWidth, Multiline: true},
	{Name: Hour3, Label: "Hours 3", X: 502, Y: 525},
	{Name: DateOfSign, Label: "Signature Date 1", X: 50, Y: 716, Computed: true},
	{Name: DateOfSign2, Label: "Signature Date 2", X: 305, Y: 716, Computed: true},
}

// Lookup returns the schema entry for name.
func Lookup(name string) (Field, bool) {
	for _, f := range Schema {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Editable returns the fields a user fills in by hand.
func Editable() []Field {
	var out []Field
	for _, f := range Schema {
		if !f.Computed {
			out = append(out, f)
		}
	}
	return out
}
