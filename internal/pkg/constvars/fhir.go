package constvars

const (
	ResourcePatient               = "Patient"
	ResourcePractitioner          = "Practitioner"
	ResourceOrganization          = "Organization"
	ResourceEncounter             = "Encounter"
	ResourceObservation           = "Observation"
	ResourceDiagnosticReport      = "DiagnosticReport"
	ResourceMedication            = "Medication"
	ResourceMedicationRequest     = "MedicationRequest"
	ResourceCarePlan              = "CarePlan"
	ResourceCondition             = "Condition"
	ResourceProcedure             = "Procedure"
	ResourceQuestionnaire         = "Questionnaire"
	ResourceQuestionnaireResponse = "QuestionnaireResponse"
	ResourcePayment               = "Payment"
)

const (
	// FHIR search parameters used when scoping list requests to a principal.
	SearchParamSubject             = "subject"
	SearchParamPatient             = "patient"
	SearchParamGeneralPractitioner = "general-practitioner"
	SearchParamID                  = "_id"
)
