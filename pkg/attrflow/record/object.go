package record

// Object is a host record that takes part in workflows: it has a state,
// sits in a tree and can be stored and checked in.
type Object interface {
	Target

	ID() string
	State() string
	IsFolder() bool

	// ClassifiedFieldIDs lists the attribute ids classified on the object.
	ClassifiedFieldIDs() ([]string, error)
	// FieldIDsByTags lists the attribute ids carrying any of the tags.
	FieldIDsByTags(tags []string) ([]string, error)
	// Parts returns the unformatted sub-values of an attribute.
	// An attribute without value returns nil Parts.
	Parts(id string, lang LanguageID) (Parts, error)
	// References returns the ids referenced by a reference attribute.
	References(id string) ([]string, error)
	// Table returns the sub-table of a table attribute for lang.
	Table(fieldID string, lang LanguageID) (Table, error)

	// Children returns descendants down to levels; 0 means all levels.
	Children(levels int) ([]Object, error)
	// Parent returns the parent object, or nil at the root.
	Parent() (Object, error)

	Store() error
	Checkin() error
}

// Table is the per-language content of a table attribute.
type Table interface {
	RowIDs() []string
	Rows() []Row
	DeleteRows(ids []string) error
	AddRow(lang LanguageID) (Row, error)
}

// Row is one row of a Table.
type Row interface {
	Target

	FieldIDs() []string
	Parts(id string, lang LanguageID) (Parts, error)
	Store() error
}
