package history_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"weatherdash/weather-dashboard/internal/db/history"
)

type HistoryRepositorySuite struct {
	suite.Suite
	DB   *gorm.DB
	mock sqlmock.Sqlmock
	repo history.Repository
}

func (s *HistoryRepositorySuite) SetupSuite() {
	var err error

	var db *sql.DB
	db, s.mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	s.Require().NoError(err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	s.DB, err = gorm.Open(dialector, &gorm.Config{})
	s.Require().NoError(err)

	s.repo = history.NewRepository(s.DB)
}

func (s *HistoryRepositorySuite) TearDownTest() {
	s.Require().NoError(s.mock.ExpectationsWereMet())
}

func (s *HistoryRepositorySuite) TestSaveSnapshot() {
	s.Run("Successfully saves a snapshot", func() {
		capturedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		s.mock.ExpectBegin()
		s.mock.ExpectQuery(`INSERT INTO "weather_snapshots"`).
			WithArgs(
				"2950159",
				"Berlin",
				52.52,
				13.405,
				"OpenMeteo",
				14.2,
				71.0,
				1012.0,
				4.1,
				0.0,
				40.0,
				capturedAt,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		s.mock.ExpectCommit()

		err := s.repo.SaveSnapshot(&history.Snapshot{
			LocationID:    "2950159",
			LocationName:  "Berlin",
			Latitude:      52.52,
			Longitude:     13.405,
			Provider:      "OpenMeteo",
			Temperature:   14.2,
			Humidity:      71,
			Pressure:      1012,
			WindSpeed:     4.1,
			Precipitation: 0,
			CloudCover:    40,
			CapturedAt:    capturedAt,
		})

		s.Require().NoError(err)
	})

	s.Run("Defaults the capture time when unset", func() {
		s.mock.ExpectBegin()
		s.mock.ExpectQuery(`INSERT INTO "weather_snapshots"`).
			WithArgs(
				"2950159",
				"Berlin",
				52.52,
				13.405,
				"OpenWeatherMap",
				15.0,
				60.0,
				1010.0,
				3.0,
				0.2,
				75.0,
				sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		s.mock.ExpectCommit()

		snapshot := &history.Snapshot{
			LocationID:    "2950159",
			LocationName:  "Berlin",
			Latitude:      52.52,
			Longitude:     13.405,
			Provider:      "OpenWeatherMap",
			Temperature:   15,
			Humidity:      60,
			Pressure:      1010,
			WindSpeed:     3,
			Precipitation: 0.2,
			CloudCover:    75,
		}

		err := s.repo.SaveSnapshot(snapshot)

		s.Require().NoError(err)
		s.Require().False(snapshot.CapturedAt.IsZero())
	})

	s.Run("Returns error when the insert fails", func() {
		dbError := errors.New("database error")

		s.mock.ExpectBegin()
		s.mock.ExpectQuery(`INSERT INTO "weather_snapshots"`).
			WillReturnError(dbError)
		s.mock.ExpectRollback()

		err := s.repo.SaveSnapshot(&history.Snapshot{
			LocationID: "2950159",
			Provider:   "OpenMeteo",
			CapturedAt: time.Now(),
		})

		s.Require().Error(err)
		s.Require().Equal("database error", err.Error())
	})
}

func (s *HistoryRepositorySuite) TestGetRange() {
	queryRegex := `SELECT \* FROM "weather_snapshots" WHERE location_id = \$1 AND captured_at BETWEEN \$2 AND \$3 ORDER BY captured_at ASC`

	s.Run("Returns the snapshots inside the window", func() {
		from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		to := from.Add(24 * time.Hour)
		capturedAt := from.Add(6 * time.Hour)

		rows := sqlmock.NewRows([]string{
			"id", "location_id", "location_name", "latitude", "longitude",
			"provider", "temperature", "humidity", "pressure", "wind_speed",
			"precipitation", "cloud_cover", "captured_at",
		}).AddRow(
			1, "2950159", "Berlin", 52.52, 13.405,
			"OpenMeteo", 14.2, 71.0, 1012.0, 4.1,
			0.0, 40.0, capturedAt,
		)

		s.mock.ExpectQuery(queryRegex).
			WithArgs("2950159", from, to).
			WillReturnRows(rows)

		snapshots, err := s.repo.GetRange("2950159", from, to)

		s.Require().NoError(err)
		s.Require().Len(snapshots, 1)
		s.Require().Equal("Berlin", snapshots[0].LocationName)
		s.Require().Equal(14.2, snapshots[0].Temperature)
	})

	s.Run("Returns error when the query fails", func() {
		from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		to := from.Add(24 * time.Hour)

		s.mock.ExpectQuery(queryRegex).
			WithArgs("2950159", from, to).
			WillReturnError(errors.New("connection error"))

		snapshots, err := s.repo.GetRange("2950159", from, to)

		s.Require().Error(err)
		s.Require().Nil(snapshots)
	})
}

func (s *HistoryRepositorySuite) TestDeleteOlderThan() {
	s.Run("Deletes rows past the cutoff and reports the count", func() {
		cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

		s.mock.ExpectBegin()
		s.mock.ExpectExec(`DELETE FROM "weather_snapshots" WHERE captured_at < \$1`).
			WithArgs(cutoff).
			WillReturnResult(sqlmock.NewResult(0, 12))
		s.mock.ExpectCommit()

		deleted, err := s.repo.DeleteOlderThan(cutoff)

		s.Require().NoError(err)
		s.Require().Equal(int64(12), deleted)
	})

	s.Run("Returns error when the delete fails", func() {
		cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

		s.mock.ExpectBegin()
		s.mock.ExpectExec(`DELETE FROM "weather_snapshots" WHERE captured_at < \$1`).
			WithArgs(cutoff).
			WillReturnError(errors.New("connection error"))
		s.mock.ExpectRollback()

		_, err := s.repo.DeleteOlderThan(cutoff)

		s.Require().Error(err)
	})
}

func TestHistoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(HistoryRepositorySuite))
}
