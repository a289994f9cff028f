package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

// sqliteMealRepository stores the meal catalog.
type sqliteMealRepository struct {
	db *sqlite.Database
}

func newSQLiteMealRepository(db *sqlite.Database) *sqliteMealRepository {
	return &sqliteMealRepository{db: db}
}

func scanMeal(ingredients, tags string, meal *Meal) error {
	if err := json.Unmarshal([]byte(ingredients), &meal.Ingredients); err != nil {
		return fmt.Errorf("unmarshal ingredients: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &meal.Tags); err != nil {
		return fmt.Errorf("unmarshal tags: %w", err)
	}
	return nil
}

// Get retrieves a single meal by ID.
func (r *sqliteMealRepository) Get(ctx context.Context, id int) (Meal, error) {
	var (
		meal        Meal
		ingredients string
		tags        string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, ingredients, protein_g, carbs_g, fat_g, calories, tags, prep_notes
		FROM meals
		WHERE id = ?`, id).Scan(
		&meal.ID, &meal.Name, &ingredients, &meal.ProteinG, &meal.CarbsG,
		&meal.FatG, &meal.Calories, &tags, &meal.PrepNotes)
	if errors.Is(err, sql.ErrNoRows) {
		return Meal{}, ErrNotFound
	}
	if err != nil {
		return Meal{}, fmt.Errorf("query meal: %w", err)
	}

	if err = scanMeal(ingredients, tags, &meal); err != nil {
		return Meal{}, err
	}

	return meal, nil
}

// List returns all meals in catalog order.
func (r *sqliteMealRepository) List(ctx context.Context) (_ []Meal, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, ingredients, protein_g, carbs_g, fat_g, calories, tags, prep_notes
		FROM meals
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var meals []Meal
	for rows.Next() {
		var (
			meal        Meal
			ingredients string
			tags        string
		)
		if err = rows.Scan(&meal.ID, &meal.Name, &ingredients, &meal.ProteinG,
			&meal.CarbsG, &meal.FatG, &meal.Calories, &tags, &meal.PrepNotes); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		if err = scanMeal(ingredients, tags, &meal); err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return meals, nil
}

// Create adds a new meal to the catalog.
func (r *sqliteMealRepository) Create(ctx context.Context, meal Meal) (Meal, error) {
	ingredients, err := json.Marshal(meal.Ingredients)
	if err != nil {
		return Meal{}, fmt.Errorf("marshal ingredients: %w", err)
	}
	tags, err := json.Marshal(meal.Tags)
	if err != nil {
		return Meal{}, fmt.Errorf("marshal tags: %w", err)
	}

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO meals (name, ingredients, protein_g, carbs_g, fat_g, calories, tags, prep_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meal.Name, string(ingredients), meal.ProteinG, meal.CarbsG, meal.FatG,
		meal.Calories, string(tags), meal.PrepNotes)
	if err != nil {
		return Meal{}, fmt.Errorf("insert meal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Meal{}, fmt.Errorf("get last insert ID: %w", err)
	}
	meal.ID = int(id)

	return meal, nil
}
