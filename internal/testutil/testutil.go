// Package testutil provides shared test utilities and fixtures.
//
// PassengerCSV is a 13-row slice of the Titanic passenger list with a
// known shape: two missing Age cells, one missing Embarked, a sparse Cabin
// column, one exact duplicate row (PassengerId 5) and one Fare outlier.
package testutil

import (
	"math"
	"net/http"
	"testing"

	"github.com/banshee-data/survival.report/internal/httputil"
)

// FixtureURL is the URL tests hand to the mock client.
const FixtureURL = "http://fixtures.invalid/titanic.csv"

// PassengerCSV is the shared passenger fixture.
const PassengerCSV = `PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked
1,0,3,"Braund, Mr. Owen Harris",male,22,1,0,A/5 21171,7.25,,S
2,1,1,"Cumings, Mrs. John Bradley (Florence Briggs Thayer)",female,38,1,0,PC 17599,71.2833,C85,C
3,1,3,"Heikkinen, Miss. Laina",female,26,0,0,STON/O2. 3101282,7.925,,S
4,1,1,"Futrelle, Mrs. Jacques Heath (Lily May Peel)",female,35,1,0,113803,53.1,C123,S
5,0,3,"Allen, Mr. William Henry",male,35,0,0,373450,8.05,,S
6,0,3,"Moran, Mr. James",male,,0,0,330877,8.4583,,Q
7,0,1,"McCarthy, Mr. Timothy J",male,54,0,0,17463,51.8625,E46,S
8,0,3,"Palsson, Master. Gosta Leonard",male,2,3,1,349909,21.075,,S
9,1,3,"Johnson, Mrs. Oscar W (Elisabeth Vilhelmina Berg)",female,,0,2,347742,11.1333,,S
10,1,2,"Nasser, Mrs. Nicholas (Adele Achem)",female,14,1,0,237736,30.0708,,C
11,0,1,"Fortune, Mr. Charles Alexander",male,19,3,2,19950,263,C23 C25 C27,S
12,1,1,"Icard, Miss. Amelie",female,38,0,0,113572,80,B28,
5,0,3,"Allen, Mr. William Henry",male,35,0,0,373450,8.05,,S
`

// Known facts about PassengerCSV, shared by tests across packages.
const (
	FixtureRows          = 13
	FixtureCols          = 12
	FixtureAgeMissing    = 2
	FixtureCabinMissing  = 8
	FixtureAgeMedian     = 35.0
	FixtureEmbarkedMode  = "S"
	FixtureDuplicates    = 1
	FixtureFareOutliers  = 1
	FixtureSurvivalRate  = 50.0
	FixtureFareLowerIQR  = -65.578175
	FixtureFareUpperIQR  = 131.580225
	FixtureCleanRows     = 12
	FixtureCleanCols     = 11
	FixtureSurvivorCount = 6
)

// NewFixtureClient returns a mock HTTP client that serves PassengerCSV once.
func NewFixtureClient() *httputil.MockHTTPClient {
	return httputil.NewMockHTTPClient().AddResponse(http.StatusOK, PassengerCSV)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertFloat checks got is within tol of want.
func AssertFloat(t testing.TB, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%g)", name, got, want, tol)
	}
}
