package algo

// keyword is a lowercase indicator term and its weight in (0,1].
type keyword struct {
	term   string
	weight float64
}

// category groups keyword indicators under a single weight of the technical complexity score.
type category struct {
	name     string
	weight   float64
	keywords []keyword
}

// Category names as shown by the metrics command.
const (
	CategoryML         = "ml_ai"
	CategoryProduction = "production"
	CategoryMath       = "math"
	CategoryFrameworks = "frameworks"
)

// mlKeywords are machine learning and AI tools.
var mlKeywords = []keyword{
	{"tensorflow", 1.0},
	{"pytorch", 1.0},
	{"scikit-learn", 0.8},
	{"scikit", 0.8},
	{"mlflow", 0.9},
	{"kubeflow", 0.9},
	{"automl", 0.8},
	{"opencv", 0.7},
	{"nltk", 0.7},
	{"spacy", 0.7},
	{"transformers", 0.9},
	{"huggingface", 0.9},
	{"xgboost", 0.8},
	{"lightgbm", 0.8},
	{"catboost", 0.8},
	{"keras", 0.8},
	{"theano", 0.6},
	{"caffe", 0.6},
	{"torch", 0.9},
	{"tf", 0.9},
}

// productionKeywords are deployment and infrastructure tools.
var productionKeywords = []keyword{
	{"docker", 1.0},
	{"kubernetes", 1.0},
	{"k8s", 1.0},
	{"ci/cd", 0.9},
	{"github actions", 0.8},
	{"gitlab ci", 0.8},
	{"jenkins", 0.8},
	{"aws", 0.9},
	{"gcp", 0.9},
	{"azure", 0.9},
	{"terraform", 0.9},
	{"ansible", 0.8},
	{"prometheus", 0.8},
	{"grafana", 0.8},
	{"elk", 0.8},
	{"nginx", 0.7},
	{"apache", 0.7},
	{"redis", 0.7},
	{"postgresql", 0.7},
	{"mongodb", 0.7},
	{"elasticsearch", 0.8},
	{"kafka", 0.8},
	{"rabbitmq", 0.8},
}

// mathKeywords are mathematical and algorithmic terms.
var mathKeywords = []keyword{
	{"pde", 1.0},
	{"partial differential", 1.0},
	{"optimization", 0.9},
	{"numerical", 0.8},
	{"finite element", 0.9},
	{"finite difference", 0.9},
	{"monte carlo", 0.8},
	{"stochastic", 0.8},
	{"bayesian", 0.8},
	{"regression", 0.7},
	{"classification", 0.7},
	{"clustering", 0.7},
	{"svm", 0.7},
	{"random forest", 0.7},
	{"neural network", 0.8},
	{"deep learning", 0.9},
	{"reinforcement", 0.9},
	{"genetic", 0.8},
	{"quantum", 1.0},
	{"cryptography", 0.8},
	{"statistics", 0.7},
}

// frameworkKeywords are programming languages and frameworks.
var frameworkKeywords = []keyword{
	{"python", 0.6},
	{"javascript", 0.6},
	{"typescript", 0.6},
	{"java", 0.6},
	{"cpp", 0.7},
	{"c++", 0.7},
	{"c#", 0.6},
	{"go", 0.7},
	{"rust", 0.8},
	{"scala", 0.7},
	{"r", 0.7},
	{"matlab", 0.7},
	{"julia", 0.8},
	{"react", 0.6},
	{"vue", 0.6},
	{"angular", 0.6},
	{"next.js", 0.6},
	{"fastapi", 0.6},
	{"django", 0.6},
	{"flask", 0.6},
	{"express", 0.6},
}

// categories is evaluated in this order so the weighted sum is deterministic.
var categories = []category{
	{CategoryML, 0.4, mlKeywords},
	{CategoryProduction, 0.3, productionKeywords},
	{CategoryMath, 0.2, mathKeywords},
	{CategoryFrameworks, 0.1, frameworkKeywords},
}
