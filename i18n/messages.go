package i18n

var catalog = map[string]map[string]string{
	"en": {
		// validation
		"required":       "Required",
		"invalid_email":  "Enter a valid email address",
		"too_long":       "Too long",
		"too_short":      "Too short",
		"invalid_choice": "Invalid choice",
		"invalid":        "Invalid value",

		// notices
		"registration_success":  "Registration successful! Please login.",
		"duplicate_student_id":  "Student ID already exists!",
		"duplicate_email":       "Email already exists!",
		"invalid_credentials":   "Please check your login details and try again.",
		"login_required":        "Please log in to access this page.",
		"logged_out":            "You have been logged out.",
		"complaint_submitted":   "Complaint submitted successfully!",
		"permission_denied":     "You do not have permission to view this complaint.",
		"status_updated":        "Complaint status updated successfully!",
		"form_invalid":          "Please correct the errors below.",
		"internal_error":        "Something went wrong. Please try again.",
		"not_found":             "Not found",
		"not_found_description": "The page or complaint you requested does not exist.",

		// navigation and pages
		"app_name":          "Student Complaints",
		"login":             "Login",
		"logout":            "Logout",
		"register":          "Register",
		"dashboard":         "Dashboard",
		"admin_dashboard":   "Admin Dashboard",
		"my_complaints":     "My Complaints",
		"submit_complaint":  "Submit Complaint",
		"view_complaint":    "Complaint Details",
		"no_complaints":     "No complaints yet.",
		"back":              "Back",
		"remember_me":       "Remember me",
		"have_account":      "Already registered?",
		"no_account":        "No account yet?",
		"download_receipt":  "Download receipt (PDF)",
		"update_status":     "Update Status",
		"filter":            "Filter",
		"reset":             "Reset",
		"all":               "All",
		"total":             "Total",
		"search_title":      "Search title",
		"category_examples": "e.g. academic, hostel, maintenance",

		// fields
		"student_id":    "Student ID",
		"name":          "Name",
		"email":         "Email",
		"password":      "Password",
		"title":         "Title",
		"description":   "Description",
		"category":      "Category",
		"status":        "Status",
		"remarks":       "Remarks",
		"admin_remarks": "Admin Remarks",
		"submitted_by":  "Submitted by",
		"created_at":    "Submitted",
		"updated_at":    "Last updated",

		// statuses
		"status_open":        "Open",
		"status_in_progress": "In Progress",
		"status_resolved":    "Resolved",
		"status_rejected":    "Rejected",
	},
	"fr": {
		"required":       "Requis",
		"invalid_email":  "Adresse e-mail invalide",
		"too_long":       "Trop long",
		"too_short":      "Trop court",
		"invalid_choice": "Choix invalide",
		"invalid":        "Valeur invalide",

		"registration_success":  "Inscription réussie ! Veuillez vous connecter.",
		"duplicate_student_id":  "Ce numéro étudiant existe déjà !",
		"duplicate_email":       "Cette adresse e-mail existe déjà !",
		"invalid_credentials":   "Vérifiez vos identifiants et réessayez.",
		"login_required":        "Veuillez vous connecter pour accéder à cette page.",
		"logged_out":            "Vous êtes déconnecté.",
		"complaint_submitted":   "Réclamation envoyée !",
		"permission_denied":     "Vous n'avez pas l'autorisation de consulter cette réclamation.",
		"status_updated":        "Statut de la réclamation mis à jour !",
		"form_invalid":          "Veuillez corriger les erreurs ci-dessous.",
		"internal_error":        "Une erreur est survenue. Veuillez réessayer.",
		"not_found":             "Introuvable",
		"not_found_description": "La page ou la réclamation demandée n'existe pas.",

		"app_name":          "Réclamations étudiantes",
		"login":             "Connexion",
		"logout":            "Déconnexion",
		"register":          "Inscription",
		"dashboard":         "Tableau de bord",
		"admin_dashboard":   "Administration",
		"my_complaints":     "Mes réclamations",
		"submit_complaint":  "Nouvelle réclamation",
		"view_complaint":    "Détail de la réclamation",
		"no_complaints":     "Aucune réclamation.",
		"back":              "Retour",
		"remember_me":       "Se souvenir de moi",
		"have_account":      "Déjà inscrit ?",
		"no_account":        "Pas encore de compte ?",
		"download_receipt":  "Télécharger le récépissé (PDF)",
		"update_status":     "Mettre à jour le statut",
		"filter":            "Filtrer",
		"reset":             "Réinitialiser",
		"all":               "Tous",
		"total":             "Total",
		"search_title":      "Rechercher un titre",
		"category_examples": "ex. scolarité, internat, maintenance",

		"student_id":    "Numéro étudiant",
		"name":          "Nom",
		"email":         "E-mail",
		"password":      "Mot de passe",
		"title":         "Titre",
		"description":   "Description",
		"category":      "Catégorie",
		"status":        "Statut",
		"remarks":       "Remarques",
		"admin_remarks": "Remarques de l'administration",
		"submitted_by":  "Déposée par",
		"created_at":    "Déposée le",
		"updated_at":    "Mise à jour",

		"status_open":        "Ouverte",
		"status_in_progress": "En cours",
		"status_resolved":    "Résolue",
		"status_rejected":    "Rejetée",
	},
}
