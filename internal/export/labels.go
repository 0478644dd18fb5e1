package export

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/decline-cli/internal/model"
)

// Display names for result labels and section titles.
const (
	titleResults     = "Results"
	titleRecoverable = "Recoverable reserves"
	titleRemaining   = "Remaining reserves"
	titleParameter   = "Parameter"
	titleValue       = "Value"
	titleMethod      = "Method"
	titleYear        = "Year"
	titleOil         = "Oil"
	titleLiquid      = "Liquid"
	titleWaters      = "Waters"
	titleWatercut    = "Watercut"
	titleActive      = "Active Point"
	titleNoData      = "No data"
	titleNoResults   = "No active points selected"
)

var parameterNames = map[string]string{
	model.LabelVmax:          "Vmax (Maximum Recoverable)",
	model.LabelVfo:           "V fo (Recoverable Oil)",
	model.LabelVfw:           "v fw (Recoverable Water)",
	model.LabelRemainingVmax: "Remaining Vmax",
	model.LabelRemainingVfo:  "Remaining V fo",
	model.LabelRemainingVfw:  "Remaining v fw",
}

var russian = map[string]string{
	titleResults:                 "Результаты",
	titleRecoverable:             "Извлекаемые запасы",
	titleRemaining:               "Остаточные запасы",
	titleParameter:               "Параметр",
	titleValue:                   "Значение",
	titleMethod:                  "Метод",
	titleYear:                    "Год",
	titleOil:                     "Нефть",
	titleLiquid:                  "Жидкость",
	titleWaters:                  "Вода",
	titleWatercut:                "Обводненность",
	titleActive:                  "Активная точка",
	titleNoData:                  "Нет данных",
	titleNoResults:               "Активные точки не выбраны",
	"Vmax (Maximum Recoverable)": "Vmax (максимально извлекаемые)",
	"V fo (Recoverable Oil)":     "V fo (извлекаемая нефть)",
	"v fw (Recoverable Water)":   "v fw (извлекаемая вода)",
	"Remaining Vmax":             "Остаточные Vmax",
	"Remaining V fo":             "Остаточные V fo",
	"Remaining v fw":             "Остаточные v fw",
}

func init() {
	for key, msg := range russian {
		_ = message.SetString(language.Russian, key, msg)
	}
}

// newPrinter returns a printer for lang, falling back to English.
func newPrinter(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// parameterName returns the localised display name of a reserve label.
func parameterName(p *message.Printer, label string) string {
	name, ok := parameterNames[label]
	if !ok {
		name = label
	}
	return p.Sprintf(name)
}
