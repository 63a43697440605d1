package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/earlysignal/earlysignal/core/student"
)

type studentRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db, coll: db.db.Collection(studentsCollection)}
}

func (repo *studentRepository) find(filter bson.M) ([]student.Student, error) {
	ctx, cancel := repo.db.ctx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "student_id", Value: 1}})
	cur, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	students := make([]student.Student, 0)
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	return repo.find(bson.M{})
}

func (repo *studentRepository) FilterStudents(filter student.QueryFilter) ([]student.Student, error) {
	return repo.find(filterQuery(filter))
}

func filterQuery(filter student.QueryFilter) bson.M {
	query := bson.M{}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.Semester != 0 {
		query["semester"] = filter.Semester
	}
	if filter.RiskLevel != "" {
		query["risk_level"] = filter.RiskLevel
	}
	return query
}

func (repo *studentRepository) GetStudentByStudentID(studentID string) (student.Student, error) {
	ctx, cancel := repo.db.ctx()
	defer cancel()

	var s student.Student
	err := repo.coll.FindOne(ctx, bson.M{"student_id": studentID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return student.Student{}, student.ErrNotFound
	}
	if err != nil {
		return student.Student{}, err
	}
	return s, nil
}

func (repo *studentRepository) UpsertStudent(s student.Student) (student.Student, error) {
	ctx, cancel := repo.db.ctx()
	defer cancel()

	s.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"student_id":        s.StudentID,
			"name":              s.Name,
			"email":             s.Email,
			"department":        s.Department,
			"semester":          s.Semester,
			"gpa":               s.GPA,
			"attendance":        s.Attendance,
			"internal_marks":    s.InternalMarks,
			"backlogs":          s.Backlogs,
			"study_hours":       s.StudyHours,
			"previous_failures": s.PreviousFailures,
			"updated_at":        s.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": s.UpdatedAt},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"student_id": s.StudentID}, update, opts); err != nil {
		return student.Student{}, err
	}
	return repo.GetStudentByStudentID(s.StudentID)
}

func (repo *studentRepository) UpdateStudentRisk(studentID string, upd student.RiskUpdate) error {
	ctx, cancel := repo.db.ctx()
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"dropout_probability": upd.DropoutProbability,
			"risk_level":          upd.RiskLevel,
			"risk_factors":        upd.RiskFactors,
			"last_analyzed_at":    upd.AnalyzedAt,
		},
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"student_id": studentID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo *studentRepository) AverageDropoutProbability() (float64, error) {
	ctx, cancel := repo.db.ctx()
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"dropout_probability": bson.M{"$exists": true}}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$dropout_probability"},
		}}},
	}
	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Avg, nil
}

func (repo *studentRepository) CountStudents(filter student.QueryFilter) (int64, error) {
	ctx, cancel := repo.db.ctx()
	defer cancel()
	return repo.coll.CountDocuments(ctx, filterQuery(filter))
}
