package dataset

// DefaultSourceURL is the public copy of the Titanic passenger list.
const DefaultSourceURL = "https://raw.githubusercontent.com/datasciencedojo/datasets/master/titanic.csv"

// Fixed passenger schema column names.
const (
	ColPassengerID = "PassengerId"
	ColSurvived    = "Survived"
	ColPclass      = "Pclass"
	ColName        = "Name"
	ColSex         = "Sex"
	ColAge         = "Age"
	ColSibSp       = "SibSp"
	ColParch       = "Parch"
	ColTicket      = "Ticket"
	ColFare        = "Fare"
	ColCabin       = "Cabin"
	ColEmbarked    = "Embarked"
)

// CorrelationColumns are the numeric features fed to the correlation matrix,
// in display order.
var CorrelationColumns = []string{ColAge, ColFare, ColSibSp, ColParch, ColSurvived, ColPclass}

// missingTokens are cell values treated as missing in addition to "".
var missingTokens = map[string]bool{
	"":    true,
	"NA":  true,
	"NaN": true,
	"nan": true,
}

// IsMissing reports whether a raw CSV cell denotes a missing value.
func IsMissing(s string) bool { return missingTokens[s] }
