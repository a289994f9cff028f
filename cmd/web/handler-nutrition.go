package main

import (
	"net/http"

	"github.com/saulgabriel7/athlete-core/internal/nutrition"
)

// nutritionResponse is the daily nutrition summary for a profile.
type nutritionResponse struct {
	BMR            int              `json:"bmr"`
	TDEE           int              `json:"tdee"`
	CalorieTarget  int              `json:"calorie_target"`
	Macros         nutrition.Macros `json:"macros"`
	ProteinTargetG int              `json:"protein_target_g"`
	WaterLiters    float64          `json:"water_liters"`
	BMI            float64          `json:"bmi"`
	BMIClass       string           `json:"bmi_class"`
}

// nutritionGET computes the nutrition summary for a user from their current
// profile.
func (app *application) nutritionGET(w http.ResponseWriter, r *http.Request) {
	user, err := app.profileService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		app.respondError(w, r, err)
		return
	}

	plan := nutrition.CalculatePlan(user)
	bmi := nutrition.BMI(user.WeightKg, user.HeightCm)

	app.writeJSON(w, r, http.StatusOK, nutritionResponse{
		BMR:            plan.BMR,
		TDEE:           plan.TDEE,
		CalorieTarget:  plan.CalorieTarget,
		Macros:         plan.Macros,
		ProteinTargetG: plan.ProteinTargetG,
		WaterLiters:    plan.WaterLiters,
		BMI:            bmi,
		BMIClass:       nutrition.ClassifyBMI(bmi),
	})
}
