package catalog

type Card struct {
	ID          int64
	Title       string
	Description string
	ImageRef    string
	RarityID    int64
	SetID       int64
}

type CardSet struct {
	ID          int64
	Title       string
	Description string
	ImageRef    string
}
