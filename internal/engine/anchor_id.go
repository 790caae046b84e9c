package engine

import "github.com/google/uuid"

// AnchorID identifies an anchor held by a tracking session.
// The zero value means "no anchor".
type AnchorID uuid.UUID

// NoAnchor is the zero AnchorID.
var NoAnchor AnchorID

func NewAnchorID() AnchorID {
	return AnchorID(uuid.New())
}

// AnchorIDFromName derives a stable ID from a name, so fixtures that name
// their planes get the same IDs on every load.
func AnchorIDFromName(name string) AnchorID {
	return AnchorID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)))
}

func ParseAnchorID(s string) (AnchorID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NoAnchor, err
	}
	return AnchorID(id), nil
}

func (id AnchorID) IsZero() bool {
	return id == NoAnchor
}

func (id AnchorID) String() string {
	if id.IsZero() {
		return "none"
	}
	return uuid.UUID(id).String()
}
