package scenario

var assetCases = []assetCase{
	{Input: "I need a HARD HAT", Key: "hard hat", Color: "#FFD700", Scale: 1.2},
	{Input: "hard hat", Key: "hard hat", Color: "#FFD700", Scale: 1.2},
	{Input: "replace the fire extinguisher and hard hat", Key: "hard hat", Color: "#FFD700", Scale: 1.2},
	{Input: "Fire Extinguisher by the door", Key: "fire extinguisher", Color: "#DC2626", Scale: 1.0},
	{Input: "orange safety vest", Key: "safety vest", Color: "#F59E0B", Scale: 1.0},
	{Input: "Forklift", Key: "custom", Color: "#3B82F6", Scale: 1.0},
}

var commandCases = []commandCase{
	{Input: "wave hello", Action: "wave"},
	{Input: "walk to the door", Action: "walk"},
	{Input: "say hello and walk", Action: "walk"},
	{Input: "point at the screen", Action: "point"},
	{Input: "show safety posture", Action: "safety"},
	{Input: "dance", Action: "idle"},
}
