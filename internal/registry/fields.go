package registry

import (
	"github.com/sells-group/policy-extract/internal/model"
)

// productionFields is the canonical field set. Declaration order is the
// output order contract for downstream report generation; do not reorder.
var productionFields = []model.FieldSpec{
	{
		Key:         "policy_no",
		DisplayName: "Policy no.",
		ValueType:   model.TypeCode,
		Aliases: []string{
			"policy number", "policy no", "certificate no", "certificate number",
			"policy ref", "policy reference", "cert no", "cert number", "policy id",
		},
	},
	{
		Key:         "insured_name",
		DisplayName: "Insured name",
		ValueType:   model.TypeName,
		Aliases: []string{
			"insured name", "name of insured", "policy holder", "insured",
			"policyholder name", "customer name", "assured name", "insured person",
		},
	},
	{
		Key:         "insurer_name",
		DisplayName: "Insurer name",
		ValueType:   model.TypeCompany,
		Aliases: []string{
			"insurer name", "insurance company", "company name", "insurer",
			"company", "underwriter", "carrier", "insurance provider",
		},
	},
	{
		Key:         "engine_no",
		DisplayName: "Engine no.",
		ValueType:   model.TypeVehicleCode,
		Aliases: []string{
			"engine no", "engine number", "engine", "engine serial",
			"motor no", "motor number", "engine id",
		},
	},
	{
		Key:         "chassis_no",
		DisplayName: "Chassis no.",
		ValueType:   model.TypeVehicleCode,
		Aliases: []string{
			"chassis no", "chassis number", "vin", "chassis",
			"vehicle identification number", "frame no", "frame number",
			"vehicle id", "vin number",
		},
	},
	{
		Key:         "cheque_no",
		DisplayName: "Cheque no.",
		ValueType:   model.TypeNumericCode,
		Aliases: []string{
			"cheque no", "check no", "cheque number", "check number", "cheque",
			"check", "payment ref", "payment reference", "transaction id",
		},
	},
	{
		Key:         "cheque_date",
		DisplayName: "Cheque date",
		ValueType:   model.TypeDate,
		Aliases: []string{
			"cheque date", "check date", "payment date", "date of payment",
			"payment on", "paid on", "transaction date", "payment dt",
		},
	},
	{
		Key:         "bank_name",
		DisplayName: "Bank name",
		ValueType:   model.TypeBankName,
		Aliases: []string{
			"bank name", "bank", "drawn on", "issuing bank", "paying bank",
			"financial institution", "banker",
		},
	},
	{
		Key:         "net_od_premium",
		DisplayName: "Net own damage premium amount",
		ValueType:   model.TypeMonetary,
		Aliases: []string{
			"net od premium", "own damage premium", "od premium", "net own damage",
			"comprehensive premium", "property damage premium", "vehicle premium",
		},
	},
	{
		Key:         "net_liability_premium",
		DisplayName: "Net liability premium amount",
		ValueType:   model.TypeMonetary,
		Aliases: []string{
			"net liability premium", "liability premium", "tp premium",
			"third party premium", "liability amount", "tp amount", "third party amount",
		},
	},
	{
		Key:         "total_premium",
		DisplayName: "Total premium amount",
		ValueType:   model.TypeMonetary,
		Aliases: []string{
			"total premium", "net premium", "premium amount", "base premium",
			"subtotal", "premium subtotal", "premium total",
		},
	},
	{
		Key:         "gst_amount",
		DisplayName: "GST amount",
		ValueType:   model.TypeMonetary,
		Aliases: []string{
			"gst", "service tax", "tax amount", "igst", "cgst", "sgst",
			"tax", "vat", "sales tax", "total tax",
		},
	},
	{
		Key:         "gross_premium",
		DisplayName: "Gross premium paid",
		ValueType:   model.TypeMonetary,
		Aliases: []string{
			"gross premium", "total amount", "amount paid", "final amount",
			"total payable", "grand total", "amount due", "total due",
		},
	},
	{
		Key:         "car_model",
		DisplayName: "Car model",
		ValueType:   model.TypeVehicleModel,
		Aliases: []string{
			"model", "vehicle model", "make model", "car model", "vehicle make",
			"make and model", "vehicle description", "car make",
		},
	},
	{
		Key:         "body_type",
		DisplayName: "Body type",
		ValueType:   model.TypeBodyType,
		Aliases: []string{
			"body type", "vehicle type", "type of vehicle", "category",
			"vehicle category", "classification", "car type",
		},
	},
}

// Production returns the registry of the 15 production field specs.
func Production() *model.FieldRegistry {
	return model.NewFieldRegistry(productionFields)
}
