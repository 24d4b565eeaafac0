package enums

// CustomerSegment is the mutually exclusive RFM-style classification
// assigned by the segmentation cascade. Evaluated top-down, first match
// wins: VIP > Loyal > Recent > AtRisk > Regular > Inactive > New.
type CustomerSegment string

const (
	SegmentVIP      CustomerSegment = "vip"
	SegmentLoyal    CustomerSegment = "loyal"
	SegmentRecent   CustomerSegment = "recent"
	SegmentAtRisk   CustomerSegment = "at_risk"
	SegmentRegular  CustomerSegment = "regular"
	SegmentInactive CustomerSegment = "inactive"
	SegmentNew      CustomerSegment = "new"
)

// String implements fmt.Stringer.
func (s CustomerSegment) String() string {
	return string(s)
}
