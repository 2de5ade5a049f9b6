package captioner

// DefaultSceneCategories is the built-in scene taxonomy. The slice order is
// the tie-break order for classification. Keywords are matched as substrings
// of normalized labels.
var DefaultSceneCategories = []SceneCategory{
	{
		Name:     "people",
		Keywords: []string{"person", "man", "woman", "child", "baby", "face", "human", "people", "boy", "girl"},
		Templates: []string{
			"A captivating portrait showcasing genuine human emotion and natural expression",
			"People sharing a beautiful moment together with authentic connections",
			"A stunning portrait that captures the essence of human personality and character",
			"Individuals expressing themselves naturally in this candid and heartwarming scene",
		},
	},
	{
		Name:     "animal",
		Keywords: []string{"dog", "cat", "bird", "horse", "cow", "sheep", "elephant", "lion", "tiger", "bear", "rabbit", "fish", "pet"},
		Templates: []string{
			"A magnificent creature displaying its natural beauty and wild grace",
			"An adorable animal captured in a perfect moment of natural behavior",
			"A stunning wildlife photograph showcasing the animal's unique characteristics and personality",
			"A beautiful creature living freely in its natural environment with perfect timing",
		},
	},
	{
		Name:     "food",
		Keywords: []string{"pizza", "burger", "sandwich", "cake", "bread", "fruit", "apple", "banana", "food", "meal", "dish"},
		Templates: []string{
			"A mouth-watering culinary masterpiece presented with exquisite attention to detail",
			"Delicious cuisine artfully arranged to showcase its appetizing colors and textures",
			"A gourmet creation that perfectly balances visual appeal with culinary excellence",
			"Fresh ingredients transformed into an irresistible dish that delights all the senses",
		},
	},
	{
		Name:     "vehicle",
		Keywords: []string{"car", "truck", "bus", "motorcycle", "bicycle", "train", "airplane", "boat", "ship", "vehicle"},
		Templates: []string{
			"A stunning example of automotive design and engineering excellence",
			"Transportation technology showcased from a dynamic and compelling perspective",
			"A beautifully maintained vehicle displaying exceptional craftsmanship and style",
			"Modern mobility captured with attention to design details and aesthetic appeal",
		},
	},
	{
		Name:     "nature",
		Keywords: []string{"tree", "flower", "mountain", "beach", "ocean", "forest", "grass", "sky", "cloud", "sunset", "landscape"},
		Templates: []string{
			"Nature's breathtaking beauty captured in a moment of perfect harmony and tranquility",
			"A spectacular natural landscape displaying the raw power and elegance of our planet",
			"Mother Nature's artistry revealed through stunning colors, textures, and natural lighting",
			"A serene natural scene that inspires peace and connection with the natural world",
		},
	},
	{
		Name:     "architecture",
		Keywords: []string{"building", "house", "church", "tower", "bridge", "castle", "monument", "structure"},
		Templates: []string{
			"Magnificent architectural achievement showcasing exceptional design and structural elegance",
			"A building that represents the perfect fusion of form, function, and artistic vision",
			"Architectural brilliance captured from a perspective that highlights its unique features",
			"Structural artistry that demonstrates human creativity and engineering prowess",
		},
	},
	{
		Name:     "indoor",
		Keywords: []string{"room", "kitchen", "bedroom", "office", "restaurant", "store", "museum", "interior"},
		Templates: []string{
			"A thoughtfully designed interior space with sophisticated lighting and elegant details",
			"An inviting indoor environment that perfectly balances comfort with aesthetic appeal",
			"Interior design excellence showcasing harmonious color schemes and spatial arrangement",
			"A well-appointed indoor setting that creates the perfect atmosphere and ambiance",
		},
	},
	{
		Name:     "outdoor",
		Keywords: []string{"park", "street", "road", "garden", "field", "landscape", "outdoor"},
		Templates: []string{
			"A captivating outdoor scene bathed in natural light with perfect environmental harmony",
			"An outdoor vista that showcases the beauty of open spaces and natural elements",
			"A scenic outdoor landscape featuring dynamic textures and compelling visual depth",
			"An expansive outdoor setting that invites exploration and peaceful contemplation",
		},
	},
}

// DefaultCaptions are the fallback phrases used when decoding produces no
// usable words and no tone builder applies.
var DefaultCaptions = []string{
	"A visually compelling image that captures attention with its unique composition and artistic merit",
	"An expertly crafted photograph showcasing exceptional attention to detail and visual storytelling",
	"A captivating scene that draws viewers in through masterful use of light, color, and perspective",
	"A beautifully composed image that demonstrates the photographer's artistic vision and technical skill",
	"A striking visual narrative that perfectly balances aesthetic appeal with emotional resonance",
	"An outstanding photograph that captures a moment of genuine beauty and authentic expression",
	"A professionally executed image featuring excellent composition and compelling visual elements",
}

// Phrase pools for the tone builders.
var (
	creativeIntros = []string{
		"A mesmerizing capture of", "An artistic portrayal of", "A captivating scene featuring",
		"An imaginative composition showcasing", "A visually stunning display of",
	}
	creativeWords = []string{"stunning", "breathtaking", "mesmerizing", "captivating", "enchanting"}

	professionalTerms = []string{
		"expertly composed", "professionally captured", "skillfully photographed",
		"technically excellent", "masterfully executed",
	}

	casualStarters = []string{
		"Check out this awesome", "Love this shot of", "Really cool", "Amazing",
		"Such a great capture of", "Totally loving this",
	}
	casualEndings = []string{
		"Perfect vibes!", "So cool!", "Amazing shot!", "Love the colors!",
		"This is so good!", "What a moment!",
	}

	poeticPhrases = []string{
		"like a painted dream", "poetry in visual form", "a moment frozen in beauty",
	}
)
