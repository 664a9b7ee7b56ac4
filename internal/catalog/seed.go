package catalog

func init() {
	reg = buildRegistry(seedProblems(), seedPatterns())
}

// seedPatterns returns the built-in pattern taxonomy.
func seedPatterns() []Pattern {
	return []Pattern{
		{
			ID:          "two-pointers",
			Name:        "Two Pointers",
			Description: "Walk two indices through a sequence, moving them based on a condition to avoid nested scans.",
		},
		{
			ID:          "sliding-window",
			Name:        "Sliding Window",
			Description: "Maintain a contiguous window over a sequence, expanding and shrinking it to track an invariant.",
		},
		{
			ID:          "hash-map",
			Name:        "Hash Map Lookup",
			Description: "Trade memory for time by indexing seen values for O(1) membership or frequency checks.",
		},
		{
			ID:          "binary-search",
			Name:        "Binary Search",
			Description: "Halve a sorted or monotonic search space on each step.",
		},
		{
			ID:          "bfs",
			Name:        "Breadth-First Search",
			Description: "Explore a graph or grid level by level with a queue; finds shortest paths in unweighted graphs.",
		},
		{
			ID:          "dfs",
			Name:        "Depth-First Search",
			Description: "Explore as deep as possible before backtracking; natural fit for trees and connectivity.",
		},
		{
			ID:          "dynamic-programming",
			Name:        "Dynamic Programming",
			Description: "Decompose into overlapping subproblems and memoize or tabulate their answers.",
		},
		{
			ID:          "stack",
			Name:        "Stack",
			Description: "Use LIFO ordering to match nested structure or defer work until a closing condition.",
		},
		{
			ID:          "heap",
			Name:        "Heap / Priority Queue",
			Description: "Repeatedly extract the minimum or maximum without fully sorting.",
		},
		{
			ID:          "greedy",
			Name:        "Greedy",
			Description: "Commit to the locally best choice at each step when an exchange argument proves it safe.",
		},
	}
}

// seedProblems returns the built-in problem set.
func seedProblems() []Problem {
	return []Problem{
		{
			ID:         "two-sum",
			Title:      "Two Sum",
			Difficulty: DifficultyEasy,
			Description: "Given an array of integers and a target, return indices of the two numbers " +
				"that add up to the target. Each input has exactly one solution and an element may not be used twice.",
			PatternIDs:  []string{"hash-map"},
			Examples:    []string{"nums = [2,7,11,15], target = 9 → [0,1]"},
			Constraints: []string{"2 <= len(nums) <= 10^4", "exactly one valid answer exists"},
		},
		{
			ID:         "valid-parentheses",
			Title:      "Valid Parentheses",
			Difficulty: DifficultyEasy,
			Description: "Given a string containing only the characters ()[]{}, determine whether " +
				"every opening bracket is closed by the same type in the correct order.",
			PatternIDs:  []string{"stack"},
			Examples:    []string{`s = "([])" → true`, `s = "(]" → false`},
			Constraints: []string{"1 <= len(s) <= 10^4"},
		},
		{
			ID:         "best-time-stock",
			Title:      "Best Time to Buy and Sell Stock",
			Difficulty: DifficultyEasy,
			Description: "Given daily prices, choose one day to buy and a later day to sell to " +
				"maximize profit. Return 0 if no profit is possible.",
			PatternIDs:  []string{"greedy", "sliding-window"},
			Examples:    []string{"prices = [7,1,5,3,6,4] → 5"},
			Constraints: []string{"1 <= len(prices) <= 10^5"},
		},
		{
			ID:         "binary-search-basic",
			Title:      "Binary Search",
			Difficulty: DifficultyEasy,
			Description: "Given a sorted array and a target, return the target's index or -1 in " +
				"O(log n) time.",
			PatternIDs:  []string{"binary-search"},
			Examples:    []string{"nums = [-1,0,3,5,9,12], target = 9 → 4"},
			Constraints: []string{"all elements are unique", "nums is sorted ascending"},
		},
		{
			ID:         "longest-substring",
			Title:      "Longest Substring Without Repeating Characters",
			Difficulty: DifficultyMedium,
			Description: "Given a string, find the length of the longest substring that contains " +
				"no repeated characters.",
			PatternIDs:  []string{"sliding-window", "hash-map"},
			Examples:    []string{`s = "abcabcbb" → 3`},
			Constraints: []string{"0 <= len(s) <= 5 * 10^4"},
		},
		{
			ID:         "three-sum",
			Title:      "3Sum",
			Difficulty: DifficultyMedium,
			Description: "Return all unique triplets in the array that sum to zero. The solution " +
				"set must not contain duplicate triplets.",
			PatternIDs:  []string{"two-pointers"},
			Examples:    []string{"nums = [-1,0,1,2,-1,-4] → [[-1,-1,2],[-1,0,1]]"},
			Constraints: []string{"3 <= len(nums) <= 3000"},
		},
		{
			ID:         "number-of-islands",
			Title:      "Number of Islands",
			Difficulty: DifficultyMedium,
			Description: "Given a 2D grid of '1' (land) and '0' (water), count the islands formed " +
				"by horizontally or vertically connected land cells.",
			PatternIDs:  []string{"bfs", "dfs"},
			Examples:    []string{`grid with two separate land masses → 2`},
			Constraints: []string{"1 <= rows, cols <= 300"},
		},
		{
			ID:         "coin-change",
			Title:      "Coin Change",
			Difficulty: DifficultyMedium,
			Description: "Given coin denominations and an amount, return the fewest coins needed " +
				"to make up the amount, or -1 if impossible.",
			PatternIDs:  []string{"dynamic-programming", "bfs"},
			Examples:    []string{"coins = [1,2,5], amount = 11 → 3"},
			Constraints: []string{"1 <= len(coins) <= 12", "0 <= amount <= 10^4"},
		},
		{
			ID:         "top-k-frequent",
			Title:      "Top K Frequent Elements",
			Difficulty: DifficultyMedium,
			Description: "Given an integer array and k, return the k most frequent elements in " +
				"better than O(n log n) time.",
			PatternIDs:  []string{"heap", "hash-map"},
			Examples:    []string{"nums = [1,1,1,2,2,3], k = 2 → [1,2]"},
			Constraints: []string{"k is in the range [1, number of unique elements]"},
		},
		{
			ID:         "merge-intervals",
			Title:      "Merge Intervals",
			Difficulty: DifficultyMedium,
			Description: "Given a collection of intervals, merge all overlapping intervals and " +
				"return the non-overlapping result.",
			PatternIDs:  []string{"greedy"},
			Examples:    []string{"[[1,3],[2,6],[8,10]] → [[1,6],[8,10]]"},
			Constraints: []string{"1 <= len(intervals) <= 10^4"},
		},
		{
			ID:         "trapping-rain-water",
			Title:      "Trapping Rain Water",
			Difficulty: DifficultyHard,
			Description: "Given an elevation map, compute how much water it can trap after raining.",
			PatternIDs:  []string{"two-pointers", "stack"},
			Examples:    []string{"height = [0,1,0,2,1,0,1,3,2,1,2,1] → 6"},
			Constraints: []string{"1 <= len(height) <= 2 * 10^4"},
		},
		{
			ID:         "median-two-arrays",
			Title:      "Median of Two Sorted Arrays",
			Difficulty: DifficultyHard,
			Description: "Given two sorted arrays, return the median of the combined order in " +
				"O(log(m+n)) time.",
			PatternIDs:  []string{"binary-search"},
			Examples:    []string{"nums1 = [1,3], nums2 = [2] → 2.0"},
			Constraints: []string{"0 <= m, n <= 1000", "m + n >= 1"},
		},
	}
}
