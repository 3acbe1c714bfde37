package entity

// BloodGroup — результат классификации образца.
type BloodGroup string

const (
	GroupAPositive  BloodGroup = "A+ (A Positive)"
	GroupANegative  BloodGroup = "A- (A Negative)"
	GroupBPositive  BloodGroup = "B+ (B Positive)"
	GroupBNegative  BloodGroup = "B- (B Negative)"
	GroupABPositive BloodGroup = "AB+ (AB Positive)"
	GroupABNegative BloodGroup = "AB- (AB Negative)"
	GroupOPositive  BloodGroup = "O+ (O Positive)"
	GroupONegative  BloodGroup = "O- (O Negative)"
	GroupUnknown    BloodGroup = "Unknown"
)

// bloodGroups покрывает все подмножества {a, b, d}.
// Ключ — отсортированные маркеры через запятую.
var bloodGroups = map[string]BloodGroup{
	"a,d":   GroupAPositive,
	"a":     GroupANegative,
	"b,d":   GroupBPositive,
	"b":     GroupBNegative,
	"a,b,d": GroupABPositive,
	"a,b":   GroupABNegative,
	"d":     GroupOPositive,
	"":      GroupONegative,
}

// IsKnown сообщает, является ли результат реальной группой крови.
func (g BloodGroup) IsKnown() bool {
	return g != GroupUnknown && g != ""
}

func (g BloodGroup) String() string {
	return string(g)
}

// ClassifyMarkers сопоставляет множеству маркеров группу крови.
// Посторонние классы детектора не влияют на результат.
func ClassifyMarkers(set MarkerSet) BloodGroup {
	if g, ok := bloodGroups[set.Antigens().key()]; ok {
		return g
	}
	return GroupUnknown
}

// Classification — итог классификации одного образца.
type Classification struct {
	Group     BloodGroup
	Markers   MarkerSet
	NoMarkers bool // детектор не вернул ни одного объекта
}

// Classify строит классификацию по сырым классам детектора.
// Пустой вывод детектора даёт Unknown, а не O-.
func Classify(classes []string) Classification {
	if len(classes) == 0 {
		return Classification{
			Group:     GroupUnknown,
			Markers:   MarkerSet{},
			NoMarkers: true,
		}
	}

	markers := NewMarkerSet(classes...)
	return Classification{
		Group:   ClassifyMarkers(markers),
		Markers: markers,
	}
}
