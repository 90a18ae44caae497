package pages

import "github.com/nitesh/seo_engine/pkg/models"

// StandardSymptoms is the catalogue regenerated by the symptom batch.
func StandardSymptoms() []SymptomInput {
	return []SymptomInput{
		{
			Symptom:     "Écran cassé",
			Category:    "ecran",
			Description: "Un écran fissuré ou brisé gêne la lecture et peut s'aggraver au moindre choc.",
			Solutions: []string{
				"Remplacement de la vitre tactile",
				"Remplacement du bloc écran complet",
				"Pose d'un verre trempé après réparation",
			},
			RelatedSymptoms: []string{"Écran noir", "Tactile qui ne répond plus"},
			DiagnosticSteps: []string{
				"Vérifier si l'affichage fonctionne sous la fissure",
				"Tester le tactile sur toute la surface",
				"Contrôler l'absence de fuite de cristaux liquides",
			},
			FAQ: []models.FAQEntry{
				{Question: "Combien coûte le remplacement d'un écran ?", Answer: "Le prix dépend du modèle, comptez entre 60 € et 350 € selon la technologie de l'écran."},
				{Question: "Peut-on continuer à utiliser un téléphone à l'écran cassé ?", Answer: "C'est possible à court terme, mais les éclats de verre et l'humidité risquent d'endommager d'autres composants."},
			},
		},
		{
			Symptom:     "Batterie qui se décharge vite",
			Category:    "batterie",
			Description: "Une batterie usée perd sa capacité et oblige à recharger plusieurs fois par jour.",
			Solutions: []string{
				"Remplacement de la batterie",
				"Recalibrage de la batterie",
				"Identification des applications énergivores",
			},
			RelatedSymptoms: []string{"Téléphone qui ne charge plus", "Téléphone qui chauffe"},
			DiagnosticSteps: []string{
				"Consulter l'état de santé de la batterie dans les réglages",
				"Vérifier la consommation par application",
				"Observer un éventuel gonflement de la coque",
			},
			FAQ: []models.FAQEntry{
				{Question: "Quand faut-il changer sa batterie ?", Answer: "Lorsque sa capacité passe sous 80 % de la capacité d'origine ou si elle gonfle."},
				{Question: "Le remplacement de batterie efface-t-il mes données ?", Answer: "Non, le remplacement de la batterie n'affecte pas les données du téléphone."},
			},
		},
		{
			Symptom:     "Téléphone qui ne charge plus",
			Category:    "charge",
			Description: "Le téléphone ne réagit plus quand il est branché, souvent à cause du connecteur ou du câble.",
			Solutions: []string{
				"Nettoyage du connecteur de charge",
				"Remplacement du connecteur de charge",
				"Remplacement de la batterie",
			},
			RelatedSymptoms: []string{"Batterie qui se décharge vite", "Téléphone tombé dans l'eau"},
			DiagnosticSteps: []string{
				"Essayer un autre câble et un autre chargeur",
				"Inspecter le port de charge à la lampe",
				"Tester la recharge sans fil si disponible",
			},
			FAQ: []models.FAQEntry{
				{Question: "Mon téléphone ne charge plus, est-ce la batterie ?", Answer: "Pas forcément, le connecteur encrassé ou abîmé est la cause la plus fréquente."},
			},
		},
		{
			Symptom:     "Écran noir",
			Category:    "ecran",
			Description: "Le téléphone semble allumé mais l'écran reste noir, un problème d'affichage ou de nappe.",
			Solutions: []string{
				"Redémarrage forcé",
				"Remplacement de l'écran",
				"Réparation de la nappe d'affichage",
			},
			RelatedSymptoms: []string{"Écran cassé", "Téléphone qui ne s'allume plus"},
			DiagnosticSteps: []string{
				"Effectuer un redémarrage forcé",
				"Vérifier si le téléphone vibre ou sonne",
				"Brancher le téléphone sur un ordinateur",
			},
			FAQ: []models.FAQEntry{
				{Question: "Pourquoi mon écran reste noir alors que le téléphone sonne ?", Answer: "L'écran ou sa nappe de connexion est probablement endommagé, le reste du téléphone fonctionne."},
			},
		},
		{
			Symptom:     "Téléphone tombé dans l'eau",
			Category:    "oxydation",
			Description: "L'eau provoque une oxydation des composants qui peut apparaître plusieurs jours après la chute.",
			Solutions: []string{
				"Désoxydation de la carte mère",
				"Remplacement des composants oxydés",
				"Récupération des données",
			},
			RelatedSymptoms: []string{"Téléphone qui ne s'allume plus", "Téléphone qui ne charge plus"},
			DiagnosticSteps: []string{
				"Éteindre immédiatement le téléphone",
				"Ne pas le mettre en charge",
				"Confier le téléphone à un réparateur sous 48 heures",
			},
			FAQ: []models.FAQEntry{
				{Question: "Le riz permet-il de sauver un téléphone mouillé ?", Answer: "Non, le riz n'empêche pas l'oxydation. Une désoxydation professionnelle est plus efficace."},
			},
		},
		{
			Symptom:     "Téléphone qui ne s'allume plus",
			Category:    "alimentation",
			Description: "Aucune réaction à l'appui sur le bouton d'alimentation, même branché sur secteur.",
			Solutions: []string{
				"Remplacement de la batterie",
				"Réparation du bouton d'alimentation",
				"Réparation de la carte mère",
			},
			RelatedSymptoms: []string{"Écran noir", "Batterie qui se décharge vite"},
			DiagnosticSteps: []string{
				"Laisser le téléphone en charge 30 minutes",
				"Effectuer un redémarrage forcé",
				"Vérifier si le téléphone chauffe en charge",
			},
			FAQ: []models.FAQEntry{
				{Question: "Mes données sont-elles perdues ?", Answer: "Dans la plupart des cas la mémoire est intacte et les données peuvent être récupérées."},
			},
		},
		{
			Symptom:     "Tactile qui ne répond plus",
			Category:    "ecran",
			Description: "L'écran s'affiche correctement mais ne réagit plus au toucher, en partie ou totalement.",
			Solutions: []string{
				"Remplacement de la vitre tactile",
				"Remplacement du bloc écran",
				"Mise à jour du système",
			},
			RelatedSymptoms: []string{"Écran cassé", "Écran noir"},
			DiagnosticSteps: []string{
				"Retirer la coque et le verre de protection",
				"Redémarrer le téléphone",
				"Tester le tactile en mode sans échec",
			},
			FAQ: []models.FAQEntry{
				{Question: "Le tactile peut-il être réparé sans changer l'écran ?", Answer: "Sur la plupart des modèles récents la vitre et l'écran sont collés, le bloc complet doit être remplacé."},
			},
		},
		{
			Symptom:     "Téléphone qui chauffe",
			Category:    "batterie",
			Description: "Une chauffe anormale signale une batterie fatiguée, un court-circuit ou une application gourmande.",
			Solutions: []string{
				"Remplacement de la batterie",
				"Diagnostic de la carte mère",
				"Réinitialisation du système",
			},
			RelatedSymptoms: []string{"Batterie qui se décharge vite", "Téléphone qui ne charge plus"},
			DiagnosticSteps: []string{
				"Identifier si la chauffe survient en charge ou en usage",
				"Fermer les applications en arrière-plan",
				"Vérifier un éventuel gonflement de la batterie",
			},
			FAQ: []models.FAQEntry{
				{Question: "Un téléphone qui chauffe est-il dangereux ?", Answer: "Une chauffe importante accompagnée d'un gonflement de la batterie nécessite un arrêt immédiat de l'utilisation."},
			},
		},
	}
}
