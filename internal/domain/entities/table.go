package entities

// Table bounds and question count limits.
const (
	NoTable  = 0 // sentinel: no table selected
	MinTable = 1
	MaxTable = 12

	MinQuestionCount     = 1
	MaxQuestionCount     = QuestionsPerTable
	DefaultQuestionCount = 7
)

// Difficulty groups tables by how hard they usually are to memorise.
type Difficulty string

const (
	DifficultyNone   Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the selectable groups in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

var difficultyTables = map[Difficulty][]int{
	DifficultyEasy:   {2, 5, 10},
	DifficultyMedium: {3, 4, 9, 11},
	DifficultyHard:   {6, 7, 8, 12},
}

// Tables returns the tables belonging to the difficulty group.
// DifficultyNone and unknown values return nil.
func (d Difficulty) Tables() []int {
	tables := difficultyTables[d]
	if tables == nil {
		return nil
	}
	return append([]int(nil), tables...)
}

// Valid reports whether d is one of the selectable groups.
func (d Difficulty) Valid() bool {
	_, ok := difficultyTables[d]
	return ok
}

// Title returns the label shown to users.
func (d Difficulty) Title() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return ""
	}
}

// DifficultyOf returns the group that contains table.
// Table 1 is not part of any group.
func DifficultyOf(table int) Difficulty {
	for _, d := range Difficulties {
		for _, t := range difficultyTables[d] {
			if t == table {
				return d
			}
		}
	}
	return DifficultyNone
}

// ValidTable reports whether table is in [MinTable, MaxTable].
func ValidTable(table int) bool {
	return table >= MinTable && table <= MaxTable
}

// ValidQuestionCount reports whether n is in [MinQuestionCount, MaxQuestionCount].
func ValidQuestionCount(n int) bool {
	return n >= MinQuestionCount && n <= MaxQuestionCount
}
